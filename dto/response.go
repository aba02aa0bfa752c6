package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// OCRResponse merges the raw transcription with the parsed field set at
// the top level, the shape the table UI consumes.
type OCRResponse struct {
	Text          string  `json:"text"`
	Amount        *int64  `json:"amount,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
	StationName   *string `json:"station_name,omitempty"`
	PaymentNumber string  `json:"payment_number,omitempty"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ReminderResponse struct {
	OK   bool `json:"ok"`
	Sent int  `json:"sent"`
}
