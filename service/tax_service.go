package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/repository"
)

type TaxService struct {
	store *repository.Store
}

func NewTaxService(store *repository.Store) *TaxService {
	return &TaxService{store: store}
}

func (s *TaxService) List(ctx context.Context, status dto.TaxStatus, taxType dto.TaxType) ([]dto.Tax, error) {
	return s.store.ListTaxes(ctx, status, taxType)
}

func (s *TaxService) Get(ctx context.Context, id string) (*dto.Tax, error) {
	return s.store.GetTax(ctx, id)
}

// Create applies the type-dependent defaults before persisting:
// acquisition tax needs accountant review and never recurs, property
// tax recurs yearly, other taxes keep whatever the caller chose.
func (s *TaxService) Create(ctx context.Context, req *dto.CreateTaxRequest) (*dto.Tax, error) {
	if !validTaxType(req.TaxType) {
		return nil, dto.ErrInvalidTaxType
	}
	if _, err := time.Parse("2006-01-02", req.DueDate); err != nil {
		return nil, dto.ErrInvalidDueDate
	}

	tax := &dto.Tax{
		ID:              uuid.NewString(),
		StationName:     req.StationName,
		TaxType:         req.TaxType,
		Amount:          req.Amount,
		DueDate:         req.DueDate,
		Status:          dto.StatusPaymentDue,
		Memo:            req.Memo,
		IsRecurring:     req.IsRecurring,
		RecurringPeriod: req.RecurringPeriod,
		CreatedAt:       time.Now().UTC(),
	}

	switch req.TaxType {
	case dto.TaxTypeAcquisition:
		tax.Status = dto.StatusAccountantReview
		tax.IsRecurring = false
		tax.RecurringPeriod = ""
	case dto.TaxTypeProperty:
		tax.IsRecurring = true
		tax.RecurringPeriod = "매년"
	}

	if err := s.store.CreateTax(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

func (s *TaxService) Update(ctx context.Context, id string, req *dto.UpdateTaxRequest) (*dto.Tax, error) {
	tax, err := s.store.GetTax(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StationName != nil {
		tax.StationName = *req.StationName
	}
	if req.TaxType != nil {
		if !validTaxType(*req.TaxType) {
			return nil, dto.ErrInvalidTaxType
		}
		tax.TaxType = *req.TaxType
	}
	if req.Amount != nil {
		tax.Amount = *req.Amount
	}
	if req.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *req.DueDate); err != nil {
			return nil, dto.ErrInvalidDueDate
		}
		tax.DueDate = *req.DueDate
	}
	if req.Memo != nil {
		tax.Memo = *req.Memo
	}
	if req.IsRecurring != nil {
		tax.IsRecurring = *req.IsRecurring
	}
	if req.RecurringPeriod != nil {
		tax.RecurringPeriod = *req.RecurringPeriod
	}

	if err := s.store.UpdateTax(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

func (s *TaxService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTax(ctx, id)
}

// AdvanceStatus moves a record one step forward in its lifecycle.
// Acquisition tax walks 회계사검토 → 납부예정 → 납부완료; every other
// type toggles 납부예정 → 납부완료.
func (s *TaxService) AdvanceStatus(ctx context.Context, id string) (*dto.Tax, error) {
	return s.transition(ctx, id, NextStatus)
}

// RevertStatus walks the lifecycle backwards.
func (s *TaxService) RevertStatus(ctx context.Context, id string) (*dto.Tax, error) {
	return s.transition(ctx, id, PrevStatus)
}

func (s *TaxService) transition(ctx context.Context, id string, step func(dto.TaxType, dto.TaxStatus) (dto.TaxStatus, error)) (*dto.Tax, error) {
	tax, err := s.store.GetTax(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := step(tax.TaxType, tax.Status)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateTaxStatus(ctx, id, next); err != nil {
		return nil, err
	}
	tax.Status = next
	return tax, nil
}

func (s *TaxService) Stats(ctx context.Context) (*dto.TaxStats, error) {
	return s.store.TaxStats(ctx)
}

// NextStatus returns the status one step forward for the given type.
func NextStatus(taxType dto.TaxType, current dto.TaxStatus) (dto.TaxStatus, error) {
	if taxType == dto.TaxTypeAcquisition {
		switch current {
		case dto.StatusAccountantReview:
			return dto.StatusPaymentDue, nil
		case dto.StatusPaymentDue:
			return dto.StatusPaid, nil
		}
		return "", dto.ErrNoStatusTransition
	}

	if current == dto.StatusPaymentDue {
		return dto.StatusPaid, nil
	}
	if current == dto.StatusPaid {
		return "", dto.ErrNoStatusTransition
	}
	return dto.StatusPaymentDue, nil
}

// PrevStatus returns the status one step backward for the given type.
func PrevStatus(taxType dto.TaxType, current dto.TaxStatus) (dto.TaxStatus, error) {
	if taxType == dto.TaxTypeAcquisition {
		switch current {
		case dto.StatusPaid:
			return dto.StatusPaymentDue, nil
		case dto.StatusPaymentDue:
			return dto.StatusAccountantReview, nil
		}
		return "", dto.ErrNoStatusTransition
	}

	if current == dto.StatusPaid {
		return dto.StatusPaymentDue, nil
	}
	return "", dto.ErrNoStatusTransition
}

func validTaxType(t dto.TaxType) bool {
	switch t {
	case dto.TaxTypeAcquisition, dto.TaxTypeProperty, dto.TaxTypeOther:
		return true
	}
	return false
}
