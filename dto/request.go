package dto

import "errors"

// OCRRequest is the JSON alternative to a multipart file upload.
type OCRRequest struct {
	Base64 string `json:"base64"`
}

// NotifyRequest is the mail pass-through payload.
type NotifyRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Validate performs basic validation on the request
func (r *NotifyRequest) Validate() error {
	if r.To == "" || r.Subject == "" || r.HTML == "" {
		return ErrNotifyFieldsMissing
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateTaxRequest carries the fields of the "add tax" form. Status and
// recurrence defaults depend on the tax type and are filled in by the
// service layer.
type CreateTaxRequest struct {
	StationName     string  `json:"station_name" binding:"required"`
	TaxType         TaxType `json:"tax_type" binding:"required"`
	Amount          int64   `json:"amount"`
	DueDate         string  `json:"due_date" binding:"required"`
	Memo            string  `json:"memo"`
	IsRecurring     bool    `json:"is_recurring"`
	RecurringPeriod string  `json:"recurring_period"`
}

type UpdateTaxRequest struct {
	StationName     *string  `json:"station_name"`
	TaxType         *TaxType `json:"tax_type"`
	Amount          *int64   `json:"amount"`
	DueDate         *string  `json:"due_date"`
	Memo            *string  `json:"memo"`
	IsRecurring     *bool    `json:"is_recurring"`
	RecurringPeriod *string  `json:"recurring_period"`
}

type CreateStationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type RenameStationRequest struct {
	Name string `json:"name" binding:"required"`
}

var (
	ErrNotifyFieldsMissing = errors.New("to, subject, html required")
	ErrInvalidTaxType      = errors.New("unknown tax type")
	ErrInvalidDueDate      = errors.New("due_date must be YYYY-MM-DD")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotFound            = errors.New("record not found")
	ErrNoStatusTransition  = errors.New("no further status transition")
)
