package events

import "time"

const PaymentsPostedTopic = "payroll.payments.posted.v1"

// PaymentsPostedEvent is published after a submission reaches POSTED and its
// payment rows exist. Downstream consumers (reporting, notifications) key on
// the submission id.
type PaymentsPostedEvent struct {
	EventType    string    `json:"event_type"`
	SubmissionID string    `json:"submission_id"`
	LocationID   string    `json:"location_id"`
	PayDate      string    `json:"pay_date"`
	PayrollGroup string    `json:"payroll_group"`
	TotalAmount  string    `json:"total_amount"`
	PaymentCount int       `json:"payment_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}
