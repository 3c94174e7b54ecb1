package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// FieldError names the first invalid field in a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is ErrorResponse plus the offending field.
type ValidationResponse struct {
	sharedError.ErrorResponse
	Errors []FieldError `json:"errors,omitempty"`
}

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*ValidationResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	resp := &ValidationResponse{ErrorResponse: sharedError.ValidationFailed}
	for _, fe := range validationErrors {
		resp.Errors = append(resp.Errors, FieldError{Field: fe.Field(), Message: getErrorMessage(fe)})
	}
	// The top-level message carries the first problem
	resp.Message = resp.Errors[0].Message
	return resp, true
}

// NewFieldError builds a validation response for a single field checked outside the tag engine.
func NewFieldError(field, message string) *ValidationResponse {
	resp := &ValidationResponse{ErrorResponse: sharedError.ValidationFailed}
	resp.Message = message
	resp.Errors = []FieldError{{Field: field, Message: message}}
	return resp
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "กรุณากรอกข้อมูลให้ครบถ้วน"
	case "min":
		return fmt.Sprintf("ต้องมีอย่างน้อย %s ตัวอักษร", fe.Param())
	case "max":
		return fmt.Sprintf("ต้องไม่เกิน %s ตัวอักษร", fe.Param())
	case "phone":
		return fmt.Sprintf("เบอร์โทรศัพท์ต้องเป็นตัวเลข %d-%d หลัก", PhoneMinDigits, PhoneMaxDigits)
	case "datetime":
		return "รูปแบบวันที่ต้องเป็น YYYY-MM-DD"
	case "bloodgroup":
		return "กรุ๊ปเลือดต้องเป็น A, B, AB หรือ O"
	case "role":
		return "ตำแหน่งไม่ถูกต้อง"
	case "eqfield":
		return "รหัสผ่านทั้งสองช่องไม่ตรงกัน"
	case "staffusername":
		return "ชื่อผู้ใช้นี้สงวนไว้สำหรับรหัสสมาชิก"
	default:
		return fmt.Sprintf("ข้อมูล '%s' ไม่ถูกต้อง", fe.Field())
	}
}
