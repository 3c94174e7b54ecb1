package validator

import (
	"github.com/gcclub/membercard/internal/model"
	"github.com/go-playground/validator/v10"
)

// ValidateBloodGroup is the "bloodgroup" tag: A, B, AB, O or empty.
func ValidateBloodGroup(fl validator.FieldLevel) bool {
	return model.BloodGroup(fl.Field().String()).IsValid()
}

// ValidateRole is the "role" tag.
func ValidateRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).IsValid()
}

// ValidateStaffUsername is the "staffusername" tag. Staff usernames must not look
// like member IDs, which are reserved as member logins.
func ValidateStaffUsername(fl validator.FieldLevel) bool {
	return !model.IsMemberIDLike(fl.Field().String())
}
