package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watercharging/evtax-service/dto"
)

type fakeMailer struct {
	sent []fakeMail
}

type fakeMail struct {
	to      string
	subject string
	html    string
}

func (f *fakeMailer) SendHTML(to, subject, html string) error {
	f.sent = append(f.sent, fakeMail{to: to, subject: subject, html: html})
	return nil
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", FormatThousands(0))
	assert.Equal(t, "500", FormatThousands(500))
	assert.Equal(t, "3,500", FormatThousands(3500))
	assert.Equal(t, "1,234,567", FormatThousands(1234567))
}

func TestBuildDigestHTML(t *testing.T) {
	taxes := []dto.Tax{
		{StationName: "서울역 충전소", TaxType: dto.TaxTypeProperty, Amount: 350000, DueDate: "2025-09-02"},
		{StationName: "강남 충전소", TaxType: dto.TaxTypeOther, Amount: 12000, DueDate: "2025-09-02"},
		{StationName: "판교 충전소", TaxType: dto.TaxTypeAcquisition, Amount: 1200000, DueDate: "2025-09-04"},
	}

	html := BuildDigestHTML(taxes, 3)

	assert.Contains(t, html, "다음 납부 예정(3일 이내)의 세금 내역입니다.")
	assert.Contains(t, html, "<h3>2025-09-02</h3>")
	assert.Contains(t, html, "<h3>2025-09-04</h3>")
	assert.Contains(t, html, "<li>서울역 충전소 · 재산세 · 350,000원</li>")
	assert.Contains(t, html, "<li>강남 충전소 · 기타세 · 12,000원</li>")
	assert.Contains(t, html, "<li>판교 충전소 · 취득세 · 1,200,000원</li>")
	// Dates appear in due order
	assert.Less(t, strings.Index(html, "2025-09-02"), strings.Index(html, "2025-09-04"))
}

func TestSendDueReminders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := func(due string, status dto.TaxStatus) {
		err := store.CreateTax(ctx, &dto.Tax{
			ID:          uuid.NewString(),
			StationName: "서울역 충전소",
			TaxType:     dto.TaxTypeProperty,
			Amount:      350000,
			DueDate:     due,
			Status:      status,
			CreatedAt:   time.Now().UTC(),
		})
		require.NoError(t, err)
	}
	seed("2025-09-02", dto.StatusPaymentDue) // inside window
	seed("2025-09-03", dto.StatusPaid)       // paid, excluded
	seed("2025-09-10", dto.StatusPaymentDue) // past window
	seed("2025-08-30", dto.StatusPaymentDue) // already overdue, excluded

	require.NoError(t, store.UpsertUser(ctx, &dto.AppUser{
		ID: uuid.NewString(), Email: "admin@watercharging.com", Password: "pw", Role: "admin", IsActive: true,
	}))
	require.NoError(t, store.UpsertUser(ctx, &dto.AppUser{
		ID: uuid.NewString(), Email: "gone@watercharging.com", Password: "pw", Role: "viewer", IsActive: false,
	}))

	mailer := &fakeMailer{}
	svc := NewReminderService(store, mailer, 3)
	svc.now = func() time.Time {
		return time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	}

	sent, err := svc.SendDueReminders(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "admin@watercharging.com", mailer.sent[0].to)
	assert.Equal(t, "[EV Tax] 납부 예정 알림", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].html, "<h3>2025-09-02</h3>")
	assert.NotContains(t, mailer.sent[0].html, "2025-09-10")
	assert.NotContains(t, mailer.sent[0].html, "2025-09-03")
}

func TestSendDueRemindersNothingDue(t *testing.T) {
	store := newTestStore(t)
	mailer := &fakeMailer{}
	svc := NewReminderService(store, mailer, 3)

	sent, err := svc.SendDueReminders(context.Background())
	require.NoError(t, err)

	assert.Zero(t, sent)
	assert.Empty(t, mailer.sent)
}
