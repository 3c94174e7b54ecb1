// Package access decides whether an actor may reach a protected operation
// and, when it may not, where the client should be sent instead.
package access

import (
	"slices"

	"github.com/gcclub/membercard/internal/model"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
)

// Landing routes returned as redirects. Each one is served by the API:
// members land on their profile dashboard, staff on the staff dashboard.
const (
	LoginPath        = sharedContext.LoginPath
	MemberLandingURL = "/api/v1/profile"
	StaffLandingURL  = "/api/v1/staff/dashboard"
)

// Reason explains a denial.
type Reason int

const (
	Allowed Reason = iota
	NoMember
	RoleNotAllowed
)

// Decision is the outcome of evaluating a gate for one actor.
type Decision struct {
	Reason   Reason
	Redirect string
}

func (d Decision) Allowed() bool {
	return d.Reason == Allowed
}

// Gate is a required role set. An empty set admits any actor that has a member record.
type Gate struct {
	roles []model.Role
}

func NewGate(roles ...model.Role) Gate {
	return Gate{roles: slices.Clone(roles)}
}

// Permits reports whether role is in the gate's set.
func (g Gate) Permits(role model.Role) bool {
	if len(g.roles) == 0 {
		return role.IsValid()
	}
	return slices.Contains(g.roles, role)
}

// Decide evaluates the gate. hasMember is false when the authenticated
// identity has no member record.
func (g Gate) Decide(role model.Role, hasMember bool) Decision {
	if !hasMember {
		return Decision{Reason: NoMember, Redirect: LoginPath}
	}
	if g.Permits(role) {
		return Decision{Reason: Allowed}
	}
	return Decision{Reason: RoleNotAllowed, Redirect: LandingFor(role)}
}

// LandingFor returns the home page for a role: members go to their
// dashboard, everyone else to the staff dashboard.
func LandingFor(role model.Role) string {
	if role == model.RoleMember {
		return MemberLandingURL
	}
	return StaffLandingURL
}
