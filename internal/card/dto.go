package card

// Presentation variants of a card
const (
	ViewActive  = "active"
	ViewExpired = "expired"
	ViewPrint   = "print"
)

// CardResponse is everything a card page renders. QRCode is a PNG data URL
// of CardURL and is empty when the image could not be produced.
type CardResponse struct {
	View           string  `json:"view"`
	ViewOnly       bool    `json:"viewOnly"`
	MemberID       string  `json:"memberId"`
	PublicID       string  `json:"publicId"`
	FullName       string  `json:"fullName"`
	FullNameEn     string  `json:"fullNameEn"`
	Nickname       string  `json:"nickname"`
	BloodGroup     string  `json:"bloodGroup"`
	Role           string  `json:"role"`
	PhotoURL       *string `json:"photoUrl"`
	JoinDate       string  `json:"joinDate"`
	ExpireDate     *string `json:"expireDate"`
	Status         string  `json:"status"`
	IsActive       bool    `json:"isActive"`
	IsValid        bool    `json:"isValid"`
	IsExpiringSoon bool    `json:"isExpiringSoon"`
	Today          string  `json:"today"`
	CardURL        string  `json:"cardUrl"`
	QRCode         string  `json:"qrCode,omitempty"`
}
