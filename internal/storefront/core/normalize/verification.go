package normalize

import "github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"

const statusSuccess = "success"

// PaymentVerified accepts either success convention of the verify-payment
// endpoint. Neither is known to be authoritative, so both are honoured.
func PaymentVerified(res *entity.VerificationResult) bool {
	if res == nil {
		return false
	}
	return res.Success || res.Status == statusSuccess
}
