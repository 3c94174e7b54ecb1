package member

import (
	"testing"

	"github.com/gcclub/membercard/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPolicyFor(t *testing.T) {
	testCases := []struct {
		role       model.Role
		hidden     []Field
		assignable []model.Role
	}{
		{model.RoleMember, []Field{FieldRole, FieldJoinDate, FieldExpireDate}, nil},
		{model.RoleStaff, nil, []model.Role{model.RoleMember, model.RoleStaff}},
		{model.RoleCommittee, nil, []model.Role{model.RoleMember, model.RoleStaff}},
		{model.RolePresident, nil, model.Roles},
		{"", nil, model.Roles},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			policy := PolicyFor(tc.role)

			for _, f := range AllFields {
				assert.Equal(t, !containsField(tc.hidden, f), policy.CanEdit(f), "field %s", f)
			}
			for _, r := range model.Roles {
				assert.Equal(t, containsRole(tc.assignable, r), policy.CanAssign(r), "role %s", r)
			}
		})
	}
}

func TestPolicyFor_DoesNotShareState(t *testing.T) {
	member := PolicyFor(model.RoleMember)
	member.Editable[0] = FieldRole

	assert.Equal(t, FieldFirstName, AllFields[0])
	assert.Equal(t, FieldFirstName, PolicyFor(model.RoleMember).Editable[0])
}

func containsField(fields []Field, f Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

func containsRole(roles []model.Role, r model.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

func TestResolvePage(t *testing.T) {
	testCases := []struct {
		raw        string
		totalPages int
		want       int
	}{
		{"", 3, 1},
		{"abc", 3, 1},
		{"0", 3, 1},
		{"-2", 3, 1},
		{"2", 3, 2},
		{"99", 3, 3},
		{"5", 0, 1},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, resolvePage(tc.raw, tc.totalPages), "page=%q total=%d", tc.raw, tc.totalPages)
	}
}
