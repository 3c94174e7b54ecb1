package model

// MemberSequenceName is the counter row used for member ID allocation.
const MemberSequenceName = "member_id"

// MemberSequence is a durable counter. Allocation reads it under a row lock,
// increments, and writes it back inside the creating transaction.
type MemberSequence struct {
	Name      string `gorm:"column:name;size:50;primaryKey"`
	LastValue int    `gorm:"column:last_value;not null"`
}

func (*MemberSequence) TableName() string {
	return "member_sequence"
}
