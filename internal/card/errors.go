package card

import (
	"net/http"

	sharedError "github.com/gcclub/membercard/internal/shared/error"
)

const (
	cardNotFound = "CARD_NOT_FOUND" // errInfo
	qrFailed     = "QR_FAILED"      // errInfo
)

var (
	ErrCardNotFound = sharedError.NewDomainError(cardNotFound)
	ErrQRFailed     = sharedError.NewDomainError(qrFailed)
)

func init() {
	sharedError.RegisterDomainErrorResponse(cardNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CARD-001",
		Message: "ไม่พบบัตรสมาชิก",
	})

	sharedError.RegisterDomainErrorResponse(qrFailed, sharedError.ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "CARD-002",
		Message: "ไม่สามารถสร้าง QR Code ได้",
	})
}
