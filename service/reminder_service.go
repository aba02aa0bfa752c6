package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/repository"
)

const reminderSubject = "[EV Tax] 납부 예정 알림"

// Mailer delivers a single HTML mail; the SendGrid client satisfies it.
type Mailer interface {
	SendHTML(to, subject, html string) error
}

// ReminderService builds and sends the due-date digest the cron trigger
// fires: unpaid taxes falling due within the next few days, grouped by
// date, one mail per active user.
type ReminderService struct {
	store      *repository.Store
	mailer     Mailer
	windowDays int
	now        func() time.Time
}

func NewReminderService(store *repository.Store, mailer Mailer, windowDays int) *ReminderService {
	return &ReminderService{
		store:      store,
		mailer:     mailer,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// SendDueReminders mails the digest and returns how many mails went out.
// No due taxes or no active users is a successful zero-send.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	today := s.now()
	from := today.Format("2006-01-02")
	to := today.AddDate(0, 0, s.windowDays).Format("2006-01-02")

	taxes, err := s.store.ListTaxesDueBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	emails, err := s.store.ListActiveUserEmails(ctx)
	if err != nil {
		return 0, err
	}

	if len(taxes) == 0 || len(emails) == 0 {
		return 0, nil
	}

	html := BuildDigestHTML(taxes, s.windowDays)

	sent := 0
	for _, email := range emails {
		if err := s.mailer.SendHTML(email, reminderSubject, html); err != nil {
			log.Printf("Failed to send reminder to %s: %v", email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// BuildDigestHTML renders the digest body: one heading per due date,
// taxes listed under it with thousands-separated amounts. The input is
// expected to be ordered by due date.
func BuildDigestHTML(taxes []dto.Tax, windowDays int) string {
	var order []string
	grouped := make(map[string][]dto.Tax)
	for _, tax := range taxes {
		key := tax.DueDate
		if len(key) > 10 {
			key = key[:10]
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], tax)
	}

	var parts []string
	for _, date := range order {
		parts = append(parts, fmt.Sprintf("<h3>%s</h3>", date))
		parts = append(parts, "<ul>")
		for _, tax := range grouped[date] {
			parts = append(parts, fmt.Sprintf("<li>%s · %s · %s원</li>",
				tax.StationName, tax.TaxType, FormatThousands(tax.Amount)))
		}
		parts = append(parts, "</ul>")
	}

	return fmt.Sprintf("<div><p>다음 납부 예정(%d일 이내)의 세금 내역입니다.</p>%s</div>",
		windowDays, strings.Join(parts, "\n"))
}

// FormatThousands renders 1234567 as "1,234,567".
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
