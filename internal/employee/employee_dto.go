package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	PayrollGroup     string `json:"payroll_group" binding:"required,oneof=A B"`
	CompensationType string `json:"compensation_type" binding:"required,oneof=HOURLY PRODUCTION FIXED"`
	HourlyRate       string `json:"hourly_rate"`
	PieceRate        string `json:"piece_rate"`
	FixedPay         string `json:"fixed_pay"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	PayrollGroup     string `json:"payroll_group" binding:"required,oneof=A B"`
	CompensationType string `json:"compensation_type" binding:"required,oneof=HOURLY PRODUCTION FIXED"`
	HourlyRate       string `json:"hourly_rate"`
	PieceRate        string `json:"piece_rate"`
	FixedPay         string `json:"fixed_pay"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	LocationID       string `json:"location_id"`
	FullName         string `json:"full_name"`
	PayrollGroup     string `json:"payroll_group"`
	CompensationType string `json:"compensation_type"`
	HourlyRate       string `json:"hourly_rate"`
	PieceRate        string `json:"piece_rate"`
	FixedPay         string `json:"fixed_pay"`
}
