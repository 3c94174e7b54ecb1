package model

// Role governs which member fields an actor may edit and which operations it may reach.
type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleStaff     Role = "STAFF"
	RoleCommittee Role = "COMMITTEE"
	RolePresident Role = "PRESIDENT"
)

// Roles lists every role in ascending privilege order.
var Roles = []Role{RoleMember, RoleStaff, RoleCommittee, RolePresident}

// StaffRoles are the roles that operate the back office.
var StaffRoles = []Role{RoleStaff, RoleCommittee, RolePresident}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleStaff, RoleCommittee, RolePresident:
		return true
	}
	return false
}

// IsStaffSide reports whether the role lands on the staff dashboard.
func (r Role) IsStaffSide() bool {
	return r.IsValid() && r != RoleMember
}

// CanRegisterStaff reports whether the role may create staff accounts.
func (r Role) CanRegisterStaff() bool {
	return r == RoleCommittee || r == RolePresident
}

func (r Role) String() string {
	return string(r)
}

// BloodGroup is an ABO blood group. The empty value means unset.
type BloodGroup string

const (
	BloodGroupUnset BloodGroup = ""
	BloodGroupA     BloodGroup = "A"
	BloodGroupB     BloodGroup = "B"
	BloodGroupAB    BloodGroup = "AB"
	BloodGroupO     BloodGroup = "O"
)

func (b BloodGroup) IsValid() bool {
	switch b {
	case BloodGroupUnset, BloodGroupA, BloodGroupB, BloodGroupAB, BloodGroupO:
		return true
	}
	return false
}
