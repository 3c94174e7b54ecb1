package auth

import (
	"net/http"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
)

const (
	incorrectUsernamePassword = "INCORRECT_USERNAME_PASSWORD" // errInfo
	incorrectOldPassword      = "INCORRECT_OLD_PASSWORD"      // errInfo
	invalidRefreshToken       = "INVALID_REFRESH_TOKEN"       // errInfo
)

var (
	ErrIncorrectUsernamePassword = sharedError.NewDomainError(incorrectUsernamePassword)
	ErrIncorrectOldPassword      = sharedError.NewDomainError(incorrectOldPassword)
	ErrInvalidRefreshToken       = sharedError.NewDomainError(invalidRefreshToken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectUsernamePassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
	})

	sharedError.RegisterDomainErrorResponse(incorrectOldPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-004",
		Message: "รหัสผ่านเดิมไม่ถูกต้อง",
	})

	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:   http.StatusUnauthorized,
		Code:     "AUTH-005",
		Message:  "เซสชันหมดอายุ กรุณาเข้าสู่ระบบอีกครั้ง",
		Redirect: sharedContext.LoginPath,
	})
}
