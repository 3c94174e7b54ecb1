package member

import (
	"slices"

	"github.com/gcclub/membercard/internal/model"
)

// Field names a member attribute on the edit form.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldFirstNameEn Field = "firstNameEn"
	FieldLastNameEn  Field = "lastNameEn"
	FieldNickname    Field = "nickname"
	FieldPhone       Field = "phone"
	FieldBloodGroup  Field = "bloodGroup"
	FieldAddress     Field = "address"
	FieldPhoto       Field = "photo"
	FieldRole        Field = "role"
	FieldJoinDate    Field = "joinDate"
	FieldExpireDate  Field = "expireDate"
)

// AllFields is the full edit form in display order.
var AllFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldFirstNameEn,
	FieldLastNameEn,
	FieldNickname,
	FieldPhone,
	FieldBloodGroup,
	FieldAddress,
	FieldPhoto,
	FieldRole,
	FieldJoinDate,
	FieldExpireDate,
}

// Capability is what an actor may do on the member edit form.
type Capability struct {
	Editable        []Field
	AssignableRoles []model.Role
}

func without(fields []Field, drop ...Field) []Field {
	return slices.DeleteFunc(slices.Clone(fields), func(f Field) bool {
		return slices.Contains(drop, f)
	})
}

var unrestricted = Capability{Editable: AllFields, AssignableRoles: model.Roles}

var policies = map[model.Role]Capability{
	model.RoleMember: {
		Editable: without(AllFields, FieldRole, FieldJoinDate, FieldExpireDate),
	},
	model.RoleStaff: {
		Editable:        AllFields,
		AssignableRoles: []model.Role{model.RoleMember, model.RoleStaff},
	},
	model.RoleCommittee: {
		Editable:        AllFields,
		AssignableRoles: []model.Role{model.RoleMember, model.RoleStaff},
	},
	model.RolePresident: unrestricted,
}

// PolicyFor returns the capability of an actor with the given role, evaluated
// per request. An actor without a role is unrestricted; routes must gate such
// callers themselves.
func PolicyFor(role model.Role) Capability {
	c, ok := policies[role]
	if !ok {
		c = unrestricted
	}
	return Capability{
		Editable:        slices.Clone(c.Editable),
		AssignableRoles: slices.Clone(c.AssignableRoles),
	}
}

func (c Capability) CanEdit(f Field) bool {
	return slices.Contains(c.Editable, f)
}

func (c Capability) CanAssign(r model.Role) bool {
	return c.CanEdit(FieldRole) && slices.Contains(c.AssignableRoles, r)
}
