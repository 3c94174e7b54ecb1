package member

// MemberForm carries the editable member fields. A nil field was not submitted
// and is left unchanged. Fields the actor's policy does not expose are ignored.
type MemberForm struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	FirstNameEn *string `json:"firstNameEn" binding:"omitempty,max=100"`
	LastNameEn  *string `json:"lastNameEn" binding:"omitempty,max=100"`
	Nickname    *string `json:"nickname" binding:"omitempty,max=50"`
	Phone       *string `json:"phone" binding:"omitempty,max=30,phone"`
	BloodGroup  *string `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Address     *string `json:"address" binding:"omitempty,max=1000"`
	Role        *string `json:"role" binding:"omitempty,role"`
	JoinDate    *string `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	ExpireDate  *string `json:"expireDate" binding:"omitempty,datetime=2006-01-02"`
}

// CreateMemberRequest is MemberForm with the fields a new record cannot do without.
type CreateMemberRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	JoinDate  string `json:"joinDate" binding:"required,datetime=2006-01-02"`
	MemberForm
}

// Form merges the required fields into the embedded form.
func (r *CreateMemberRequest) Form() MemberForm {
	form := r.MemberForm
	form.FirstName = &r.FirstName
	form.LastName = &r.LastName
	form.JoinDate = &r.JoinDate
	return form
}

type ListRequest struct {
	Query string `form:"q" binding:"max=100"`
	Page  string `form:"page"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// Credentials is the generated login shown once to the staff member who created the record.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MemberResponse struct {
	MemberID       string  `json:"memberId"`
	PublicID       string  `json:"publicId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	FirstNameEn    string  `json:"firstNameEn"`
	LastNameEn     string  `json:"lastNameEn"`
	Nickname       string  `json:"nickname"`
	Phone          string  `json:"phone"`
	BloodGroup     string  `json:"bloodGroup"`
	Address        string  `json:"address"`
	PhotoURL       *string `json:"photoUrl"`
	JoinDate       string  `json:"joinDate"`
	ExpireDate     *string `json:"expireDate"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"isActive"`
	Status         string  `json:"status"`
	IsExpired      bool    `json:"isExpired"`
	IsValid        bool    `json:"isValid"`
	IsExpiringSoon bool    `json:"isExpiringSoon"`
	CardURL        string  `json:"cardUrl"`
}

// MemberSummary is one row of the member list.
type MemberSummary struct {
	MemberID   string  `json:"memberId"`
	PublicID   string  `json:"publicId"`
	FullName   string  `json:"fullName"`
	Nickname   string  `json:"nickname"`
	Role       string  `json:"role"`
	ExpireDate *string `json:"expireDate"`
	Status     string  `json:"status"`
	IsActive   bool    `json:"isActive"`
}

type ListResponse struct {
	Members              []MemberSummary `json:"members"`
	Query                string          `json:"q"`
	Page                 int             `json:"page"`
	PerPage              int             `json:"perPage"`
	Total                int64           `json:"total"`
	TotalPages           int             `json:"totalPages"`
	NewMemberCredentials *Credentials    `json:"newMemberCredentials,omitempty"`
}

// FormResponse describes the edit form for the current actor. Values holds
// only the fields the actor may edit.
type FormResponse struct {
	MemberID        string        `json:"memberId,omitempty"`
	Fields          []Field       `json:"fields"`
	AssignableRoles []string      `json:"assignableRoles,omitempty"`
	Values          map[Field]any `json:"values"`
}

type DeleteConfirmResponse struct {
	MemberID string `json:"memberId"`
	FullName string `json:"fullName"`
	Message  string `json:"message"`
}

type DeleteResponse struct {
	MemberID string `json:"memberId"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type UpdateResponse struct {
	Member   MemberResponse `json:"member"`
	Message  string         `json:"message"`
	Redirect string         `json:"redirect,omitempty"`
}
