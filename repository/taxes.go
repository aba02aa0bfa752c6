package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/watercharging/evtax-service/dto"
)

// ListTaxes returns tax records ordered by due date. Empty filter values
// mean "no filter".
func (s *Store) ListTaxes(ctx context.Context, status dto.TaxStatus, taxType dto.TaxType) ([]dto.Tax, error) {
	query := `SELECT * FROM taxes WHERE 1=1`
	args := []interface{}{}

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if taxType != "" {
		query += ` AND tax_type = ?`
		args = append(args, taxType)
	}
	query += ` ORDER BY due_date ASC`

	taxes := []dto.Tax{}
	if err := s.db.SelectContext(ctx, &taxes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	return taxes, nil
}

func (s *Store) GetTax(ctx context.Context, id string) (*dto.Tax, error) {
	var tax dto.Tax
	err := s.db.GetContext(ctx, &tax, `SELECT * FROM taxes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dto.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tax: %w", err)
	}
	return &tax, nil
}

func (s *Store) CreateTax(ctx context.Context, tax *dto.Tax) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO taxes (id, station_name, tax_type, amount, due_date, status,
			memo, is_recurring, recurring_period, created_at)
		VALUES (:id, :station_name, :tax_type, :amount, :due_date, :status,
			:memo, :is_recurring, :recurring_period, :created_at)`, tax)
	if err != nil {
		return fmt.Errorf("failed to insert tax: %w", err)
	}
	return nil
}

func (s *Store) UpdateTax(ctx context.Context, tax *dto.Tax) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE taxes SET station_name = :station_name, tax_type = :tax_type,
			amount = :amount, due_date = :due_date, status = :status, memo = :memo,
			is_recurring = :is_recurring, recurring_period = :recurring_period
		WHERE id = :id`, tax)
	if err != nil {
		return fmt.Errorf("failed to update tax: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) UpdateTaxStatus(ctx context.Context, id string, status dto.TaxStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE taxes SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update tax status: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteTax(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM taxes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tax: %w", err)
	}
	return checkAffected(res)
}

// ListTaxesDueBetween returns unpaid taxes with from <= due_date <= to,
// ordered by due date. Dates are "YYYY-MM-DD" strings, which collate
// correctly as text.
func (s *Store) ListTaxesDueBetween(ctx context.Context, from, to string) ([]dto.Tax, error) {
	taxes := []dto.Tax{}
	err := s.db.SelectContext(ctx, &taxes, `
		SELECT * FROM taxes
		WHERE due_date >= ? AND due_date <= ? AND status != ?
		ORDER BY due_date ASC`, from, to, dto.StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to list due taxes: %w", err)
	}
	return taxes, nil
}

// TaxStats aggregates the per-status counts and the unpaid total shown
// on the dashboard.
func (s *Store) TaxStats(ctx context.Context) (*dto.TaxStats, error) {
	var stats dto.TaxStats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(CASE WHEN status = ? THEN 1 END) AS review,
			COUNT(CASE WHEN status = ? THEN 1 END) AS pending,
			COUNT(CASE WHEN status = ? THEN 1 END) AS paid,
			COALESCE(SUM(CASE WHEN status != ? THEN amount END), 0) AS totalunpaid
		FROM taxes`,
		dto.StatusAccountantReview, dto.StatusPaymentDue, dto.StatusPaid, dto.StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tax stats: %w", err)
	}
	return &stats, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return dto.ErrNotFound
	}
	return nil
}
