package member

import (
	"net/http"

	sharedError "github.com/gcclub/membercard/internal/shared/error"
)

const (
	memberNotFound       = "MEMBER_NOT_FOUND"       // errInfo
	usernameTaken        = "USERNAME_TAKEN"         // errInfo
	roleNotAssignable    = "ROLE_NOT_ASSIGNABLE"    // errInfo
	invalidDate          = "INVALID_DATE"           // errInfo
	photoInvalidType     = "PHOTO_INVALID_TYPE"     // errInfo
	photoTooLarge        = "PHOTO_TOO_LARGE"        // errInfo
	photoStorageDisabled = "PHOTO_STORAGE_DISABLED" // errInfo
	photoNotFound        = "PHOTO_NOT_FOUND"        // errInfo
	deleteSelf           = "MEMBER_DELETE_SELF"     // errInfo
)

var (
	ErrMemberNotFound       = sharedError.NewDomainError(memberNotFound)
	ErrUsernameTaken        = sharedError.NewDomainError(usernameTaken)
	ErrRoleNotAssignable    = sharedError.NewDomainError(roleNotAssignable)
	ErrInvalidDate          = sharedError.NewDomainError(invalidDate)
	ErrPhotoInvalidType     = sharedError.NewDomainError(photoInvalidType)
	ErrPhotoTooLarge        = sharedError.NewDomainError(photoTooLarge)
	ErrPhotoStorageDisabled = sharedError.NewDomainError(photoStorageDisabled)
	ErrPhotoNotFound        = sharedError.NewDomainError(photoNotFound)
	ErrDeleteSelf           = sharedError.NewDomainError(deleteSelf)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "ไม่พบข้อมูลสมาชิก",
	})

	sharedError.RegisterDomainErrorResponse(usernameTaken, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "ชื่อผู้ใช้นี้ถูกใช้แล้ว",
	})

	sharedError.RegisterDomainErrorResponse(roleNotAssignable, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-003",
		Message: "คุณไม่มีสิทธิ์กำหนดตำแหน่งนี้",
	})

	sharedError.RegisterDomainErrorResponse(invalidDate, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-004",
		Message: "วันหมดอายุต้องไม่อยู่ก่อนวันที่สมัคร",
	})

	sharedError.RegisterDomainErrorResponse(deleteSelf, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-005",
		Message: "ไม่สามารถลบบัญชีของตัวเองได้",
	})

	sharedError.RegisterDomainErrorResponse(photoInvalidType, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "PHOTO-001",
		Message: "รองรับเฉพาะไฟล์รูปภาพ JPEG, PNG, GIF หรือ WEBP",
	})

	sharedError.RegisterDomainErrorResponse(photoTooLarge, sharedError.ErrorResponse{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "PHOTO-002",
		Message: "ไฟล์รูปภาพต้องมีขนาดไม่เกิน 5MB",
	})

	sharedError.RegisterDomainErrorResponse(photoStorageDisabled, sharedError.ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "PHOTO-003",
		Message: "ระบบจัดเก็บรูปภาพยังไม่พร้อมใช้งาน",
	})

	sharedError.RegisterDomainErrorResponse(photoNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "PHOTO-004",
		Message: "ไม่พบรูปภาพ",
	})
}
