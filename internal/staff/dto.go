package staff

import "github.com/gcclub/membercard/internal/member"

// DashboardLimit is the length of each dashboard member list.
const DashboardLimit = 5

type DashboardResponse struct {
	Today            string                 `json:"today"`
	Total            int64                  `json:"total"`
	Active           int64                  `json:"active"`
	Expired          int64                  `json:"expired"`
	ExpiringSoon     []member.MemberSummary `json:"expiringSoon"`
	RecentlyExpired  []member.MemberSummary `json:"recentlyExpired"`
	NewMembers       []member.MemberSummary `json:"newMembers"`
	CanRegisterStaff bool                   `json:"canRegisterStaff"`
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150,staffusername"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	MemberID string `json:"memberId"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
