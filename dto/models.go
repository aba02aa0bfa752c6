package dto

import "time"

type TaxType string

const (
	TaxTypeAcquisition TaxType = "취득세"
	TaxTypeProperty    TaxType = "재산세"
	TaxTypeOther       TaxType = "기타세"
)

type TaxStatus string

const (
	StatusAccountantReview TaxStatus = "회계사검토"
	StatusPaymentDue       TaxStatus = "납부예정"
	StatusPaid             TaxStatus = "납부완료"
)

// Tax is a single tax obligation tied to a charging station.
// DueDate is always the "YYYY-MM-DD" form.
type Tax struct {
	ID              string    `json:"id" db:"id"`
	StationName     string    `json:"station_name" db:"station_name"`
	TaxType         TaxType   `json:"tax_type" db:"tax_type"`
	Amount          int64     `json:"amount" db:"amount"`
	DueDate         string    `json:"due_date" db:"due_date"`
	Status          TaxStatus `json:"status" db:"status"`
	Memo            string    `json:"memo,omitempty" db:"memo"`
	IsRecurring     bool      `json:"is_recurring" db:"is_recurring"`
	RecurringPeriod string    `json:"recurring_period,omitempty" db:"recurring_period"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type Station struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address,omitempty" db:"address"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AppUser struct {
	ID       string `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	Role     string `json:"role" db:"role"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// ReceiptFields is the best-effort field set parsed out of a receipt
// transcription. Every field is independently optional; a nil pointer
// means the matching heuristic found nothing.
type ReceiptFields struct {
	Amount      *int64  `json:"amount,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	StationName *string `json:"station_name,omitempty"`
}

// TaxStats summarizes the table for the dashboard cards.
type TaxStats struct {
	Review      int   `json:"review"`
	Pending     int   `json:"pending"`
	Paid        int   `json:"paid"`
	TotalUnpaid int64 `json:"total_unpaid"`
}
