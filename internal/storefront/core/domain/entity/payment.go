package entity

// PaymentVerification carries the signed identifiers handed over by the
// checkout widget on a completed payment.
type PaymentVerification struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerificationResult is the verify-payment response. The API has answered
// with either a boolean success flag or a status string.
type VerificationResult struct {
	Success bool     `json:"success"`
	Status  string   `json:"status,omitempty"`
	Message string   `json:"message"`
	Product *Product `json:"product,omitempty"`
}
