package service

import (
	"context"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/repository"
)

type AuthService struct {
	store *repository.Store
}

func NewAuthService(store *repository.Store) *AuthService {
	return &AuthService{store: store}
}

// Login checks the credentials against the active rows of app_users.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.store.FindUserByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Email: user.Email, Role: user.Role}, nil
}
