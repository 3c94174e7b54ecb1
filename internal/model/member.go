package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MemberIDPrefix is the fixed prefix of every member ID ("GC-001").
const MemberIDPrefix = "GC"

// ErrMalformedMemberID reports a stored member ID that does not follow the GC-### pattern.
var ErrMalformedMemberID = errors.New("model: malformed member id")

// Member is one person's membership record.
type Member struct {
	ID     uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID uint32 `gorm:"column:user_id;not null;uniqueIndex:idx_member_user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Identity (immutable once assigned)
	MemberID string `gorm:"column:member_id;size:20;not null;uniqueIndex:idx_member_member_id"`
	PublicID string `gorm:"column:public_id;size:36;not null;uniqueIndex:idx_member_public_id"`

	// Thai name (required) and English name (optional)
	FirstName   string `gorm:"column:first_name;size:100;not null"`
	LastName    string `gorm:"column:last_name;size:100;not null"`
	FirstNameEn string `gorm:"column:first_name_en;size:100"`
	LastNameEn  string `gorm:"column:last_name_en;size:100"`
	Nickname    string `gorm:"column:nickname;size:50"`

	// Personal info
	Phone      string     `gorm:"column:phone;size:20"` // digits only
	BloodGroup BloodGroup `gorm:"column:blood_group;size:3"`
	Address    string     `gorm:"column:address;size:1000"`
	Photo      *string    `gorm:"column:photo;size:255"` // object path in photo storage

	// Membership
	JoinDate   datatypes.Date  `gorm:"column:join_date;not null"`
	ExpireDate *datatypes.Date `gorm:"column:expire_date"`
	Role       Role            `gorm:"column:role;size:20;not null;default:MEMBER"`
	IsActive   bool            `gorm:"column:is_active;not null;default:true"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// NewMember creates a member with default role and active flag.
// The member ID is allocated separately inside the creating transaction.
func NewMember(firstName, lastName string, joinDate time.Time) *Member {
	return &Member{
		FirstName: firstName,
		LastName:  lastName,
		JoinDate:  NewDate(joinDate),
		Role:      RoleMember,
		IsActive:  true,
	}
}

// BeforeCreate fills in the public identifier.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == "" {
		return errors.New("model: member id must be allocated before insert")
	}
	if m.PublicID == "" {
		m.PublicID = uuid.NewString()
	}
	return nil
}

// BeforeSave applies the default expiry. An expiry that is already set is never recomputed.
func (m *Member) BeforeSave(tx *gorm.DB) error {
	m.ApplyDefaultExpiry()
	return nil
}

func (m *Member) String() string {
	return fmt.Sprintf("%s - %s %s", m.MemberID, m.FirstName, m.LastName)
}

// FullName returns the Thai name.
func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// FullNameEn returns the English name, empty when none is recorded.
func (m *Member) FullNameEn() string {
	return strings.TrimSpace(m.FirstNameEn + " " + m.LastNameEn)
}

// PhotoPath returns the stored photo path or "" when the member has none.
func (m *Member) PhotoPath() string {
	if m.Photo == nil {
		return ""
	}
	return *m.Photo
}

// FormatMemberID renders a sequence number as a member ID: 7 -> "GC-007".
func FormatMemberID(n int) string {
	return fmt.Sprintf("%s-%03d", MemberIDPrefix, n)
}

// ParseMemberID extracts the sequence number from a member ID.
func ParseMemberID(memberID string) (int, error) {
	digits, ok := strings.CutPrefix(memberID, MemberIDPrefix+"-")
	if !ok || digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMemberID, memberID)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMemberID, memberID)
	}
	return n, nil
}

// IsMemberIDLike reports whether s has the shape of a member ID. Staff usernames
// must not, so they never collide with member logins.
func IsMemberIDLike(s string) bool {
	_, err := ParseMemberID(strings.ToUpper(s))
	return err == nil
}
