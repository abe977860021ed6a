package payment

type PaymentResponse struct {
	ID           string  `json:"id"`
	SubmissionID string  `json:"submission_id"`
	EmployeeID   string  `json:"employee_id"`
	LocationID   string  `json:"location_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Department   string  `json:"department"`
	PayDate      string  `json:"pay_date"`
	Amount       string  `json:"amount"`
	Hours        *string `json:"hours,omitempty"`
	Units        *string `json:"units,omitempty"`
	Count        *int64  `json:"count,omitempty"`
	Adjustment   *string `json:"adjustment,omitempty"`
	Source       string  `json:"source"`
}
