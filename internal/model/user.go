package model

// User is the authentication identity paired one-to-one with a Member.
// Members log in with their member ID as username; staff accounts pick their own.
type User struct {
	ID       uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username;size:150;not null;uniqueIndex:idx_users_username"`
	Password string `gorm:"column:password;size:60;not null"` // bcrypt hash

	BaseEntity
}

func (*User) TableName() string {
	return "users"
}

func NewUser(username, hashedPassword string) *User {
	return &User{
		Username: username,
		Password: hashedPassword,
	}
}
