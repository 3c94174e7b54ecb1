package access_test

import (
	"testing"

	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	"github.com/stretchr/testify/assert"
)

func TestGate_Decide(t *testing.T) {
	staffGate := access.NewGate(model.StaffRoles...)
	registerGate := access.NewGate(model.RoleCommittee, model.RolePresident)
	anyGate := access.NewGate()

	testCases := []struct {
		name         string
		gate         access.Gate
		role         model.Role
		hasMember    bool
		wantReason   access.Reason
		wantRedirect string
	}{
		{"no member record", staffGate, "", false, access.NoMember, access.LoginPath},
		{"staff allowed", staffGate, model.RoleStaff, true, access.Allowed, ""},
		{"member denied goes to member landing", staffGate, model.RoleMember, true, access.RoleNotAllowed, access.MemberLandingURL},
		{"staff denied goes to staff landing", registerGate, model.RoleStaff, true, access.RoleNotAllowed, access.StaffLandingURL},
		{"president allowed", registerGate, model.RolePresident, true, access.Allowed, ""},
		{"empty gate admits member", anyGate, model.RoleMember, true, access.Allowed, ""},
		{"empty gate still needs member", anyGate, "", false, access.NoMember, access.LoginPath},
		{"unknown role denied", staffGate, model.Role("ADMIN"), true, access.RoleNotAllowed, access.StaffLandingURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := tc.gate.Decide(tc.role, tc.hasMember)

			assert.Equal(t, tc.wantReason, decision.Reason)
			assert.Equal(t, tc.wantRedirect, decision.Redirect)
			assert.Equal(t, tc.wantReason == access.Allowed, decision.Allowed())
		})
	}
}

func TestLandingFor(t *testing.T) {
	assert.Equal(t, access.MemberLandingURL, access.LandingFor(model.RoleMember))
	for _, role := range model.StaffRoles {
		assert.Equal(t, access.StaffLandingURL, access.LandingFor(role))
	}
}
