package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/watercharging/evtax-service/dto"
)

// FindUserByCredentials matches an active user row on email+password,
// the same plaintext comparison the hosted table performed.
func (s *Store) FindUserByCredentials(ctx context.Context, email, password string) (*dto.AppUser, error) {
	var user dto.AppUser
	err := s.db.GetContext(ctx, &user, `
		SELECT * FROM app_users
		WHERE email = ? AND password = ? AND is_active = 1`, email, password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dto.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// ListActiveUserEmails returns the recipients of the reminder digest.
func (s *Store) ListActiveUserEmails(ctx context.Context) ([]string, error) {
	emails := []string{}
	if err := s.db.SelectContext(ctx, &emails,
		`SELECT email FROM app_users WHERE is_active = 1`); err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return emails, nil
}

// UpsertUser seeds or updates an account; used by initial provisioning.
func (s *Store) UpsertUser(ctx context.Context, user *dto.AppUser) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO app_users (id, email, password, role, is_active)
		VALUES (:id, :email, :password, :role, :is_active)
		ON CONFLICT(email) DO UPDATE SET
			password = excluded.password, role = excluded.role, is_active = excluded.is_active`, user)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
