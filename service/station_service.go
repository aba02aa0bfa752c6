package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/repository"
)

type StationService struct {
	store *repository.Store
}

func NewStationService(store *repository.Store) *StationService {
	return &StationService{store: store}
}

func (s *StationService) List(ctx context.Context, query string) ([]dto.Station, error) {
	return s.store.ListStations(ctx, query)
}

func (s *StationService) Create(ctx context.Context, req *dto.CreateStationRequest) (*dto.Station, error) {
	station := &dto.Station{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Address:   req.Address,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateStation(ctx, station); err != nil {
		return nil, err
	}
	return station, nil
}

func (s *StationService) Rename(ctx context.Context, id, name string) error {
	return s.store.RenameStation(ctx, id, strings.TrimSpace(name))
}

func (s *StationService) SetActive(ctx context.Context, id string, active bool) error {
	return s.store.SetStationActive(ctx, id, active)
}
