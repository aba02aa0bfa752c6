package repository

import (
	"context"
	"fmt"

	"github.com/watercharging/evtax-service/dto"
)

// ListStations returns stations, active first then by name. A non-empty
// query filters by name substring, case-insensitive.
func (s *Store) ListStations(ctx context.Context, query string) ([]dto.Station, error) {
	stations := []dto.Station{}
	var err error
	if query != "" {
		err = s.db.SelectContext(ctx, &stations, `
			SELECT * FROM stations
			WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
			ORDER BY is_active DESC, name ASC`, query)
	} else {
		err = s.db.SelectContext(ctx, &stations,
			`SELECT * FROM stations ORDER BY is_active DESC, name ASC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}

func (s *Store) CreateStation(ctx context.Context, station *dto.Station) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO stations (id, name, address, is_active, created_at)
		VALUES (:id, :name, :address, :is_active, :created_at)`, station)
	if err != nil {
		return fmt.Errorf("failed to insert station: %w", err)
	}
	return nil
}

func (s *Store) RenameStation(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE stations SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename station: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) SetStationActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE stations SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update station: %w", err)
	}
	return checkAffected(res)
}
