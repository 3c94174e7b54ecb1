package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Landing      string `json:"landing"` // page the client opens after signing in
	MemberID     string `json:"memberId,omitempty"`
	Role         string `json:"role,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword" binding:"required,max=128"`
	NewPassword        string `json:"newPassword" binding:"required,min=8,max=128"`
	NewPasswordConfirm string `json:"newPasswordConfirm" binding:"required,eqfield=NewPassword"`
}

type ChangePasswordResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
