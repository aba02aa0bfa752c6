package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := repository.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNextStatusAcquisition(t *testing.T) {
	next, err := NextStatus(dto.TaxTypeAcquisition, dto.StatusAccountantReview)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaymentDue, next)

	next, err = NextStatus(dto.TaxTypeAcquisition, dto.StatusPaymentDue)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaid, next)

	_, err = NextStatus(dto.TaxTypeAcquisition, dto.StatusPaid)
	assert.ErrorIs(t, err, dto.ErrNoStatusTransition)
}

func TestNextStatusPropertyToggle(t *testing.T) {
	next, err := NextStatus(dto.TaxTypeProperty, dto.StatusPaymentDue)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaid, next)

	_, err = NextStatus(dto.TaxTypeProperty, dto.StatusPaid)
	assert.ErrorIs(t, err, dto.ErrNoStatusTransition)
}

func TestPrevStatus(t *testing.T) {
	prev, err := PrevStatus(dto.TaxTypeAcquisition, dto.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaymentDue, prev)

	prev, err = PrevStatus(dto.TaxTypeAcquisition, dto.StatusPaymentDue)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusAccountantReview, prev)

	prev, err = PrevStatus(dto.TaxTypeOther, dto.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaymentDue, prev)

	_, err = PrevStatus(dto.TaxTypeOther, dto.StatusPaymentDue)
	assert.ErrorIs(t, err, dto.ErrNoStatusTransition)
}

func TestCreateAcquisitionDefaults(t *testing.T) {
	svc := NewTaxService(newTestStore(t))

	tax, err := svc.Create(context.Background(), &dto.CreateTaxRequest{
		StationName: "서울역 충전소",
		TaxType:     dto.TaxTypeAcquisition,
		Amount:      1200000,
		DueDate:     "2025-10-15",
		IsRecurring: true, // must be overridden
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatusAccountantReview, tax.Status)
	assert.False(t, tax.IsRecurring)
	assert.Empty(t, tax.RecurringPeriod)
}

func TestCreatePropertyDefaults(t *testing.T) {
	svc := NewTaxService(newTestStore(t))

	tax, err := svc.Create(context.Background(), &dto.CreateTaxRequest{
		StationName: "강남 충전소",
		TaxType:     dto.TaxTypeProperty,
		Amount:      350000,
		DueDate:     "2025-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatusPaymentDue, tax.Status)
	assert.True(t, tax.IsRecurring)
	assert.Equal(t, "매년", tax.RecurringPeriod)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := NewTaxService(newTestStore(t))

	_, err := svc.Create(context.Background(), &dto.CreateTaxRequest{
		StationName: "판교 충전소",
		TaxType:     "주민세",
		Amount:      1000,
		DueDate:     "2025-09-30",
	})
	assert.ErrorIs(t, err, dto.ErrInvalidTaxType)

	_, err = svc.Create(context.Background(), &dto.CreateTaxRequest{
		StationName: "판교 충전소",
		TaxType:     dto.TaxTypeOther,
		Amount:      1000,
		DueDate:     "2025.09.30",
	})
	assert.ErrorIs(t, err, dto.ErrInvalidDueDate)
}

func TestAdvanceAndRevertStatusRoundTrip(t *testing.T) {
	svc := NewTaxService(newTestStore(t))
	ctx := context.Background()

	tax, err := svc.Create(ctx, &dto.CreateTaxRequest{
		StationName: "수원 충전소",
		TaxType:     dto.TaxTypeAcquisition,
		Amount:      500000,
		DueDate:     "2025-12-01",
	})
	require.NoError(t, err)

	tax, err = svc.AdvanceStatus(ctx, tax.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaymentDue, tax.Status)

	tax, err = svc.AdvanceStatus(ctx, tax.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaid, tax.Status)

	tax, err = svc.RevertStatus(ctx, tax.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaymentDue, tax.Status)

	tax, err = svc.RevertStatus(ctx, tax.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusAccountantReview, tax.Status)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc := NewTaxService(newTestStore(t))
	ctx := context.Background()

	tax, err := svc.Create(ctx, &dto.CreateTaxRequest{
		StationName: "인천 충전소",
		TaxType:     dto.TaxTypeOther,
		Amount:      90000,
		DueDate:     "2025-11-20",
	})
	require.NoError(t, err)

	memo := "전기요금 10월분"
	amount := int64(95000)
	updated, err := svc.Update(ctx, tax.ID, &dto.UpdateTaxRequest{Memo: &memo, Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, memo, updated.Memo)
	assert.Equal(t, amount, updated.Amount)
	assert.Equal(t, tax.DueDate, updated.DueDate)
}

func TestGetMissingTax(t *testing.T) {
	svc := NewTaxService(newTestStore(t))

	_, err := svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, dto.ErrNotFound)
}
