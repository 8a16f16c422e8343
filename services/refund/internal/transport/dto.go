package transport

// RefundForm is the text part of the multipart refund request.
type RefundForm struct {
	Reason            string `form:"reason"            validate:"required"`
	Description       string `form:"description"       validate:"required"`
	ContactPreference string `form:"contactPreference" validate:"omitempty,oneof=email phone"`
	ContactDetails    string `form:"contactDetails"    validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
