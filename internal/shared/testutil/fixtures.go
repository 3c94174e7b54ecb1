package testutil

import (
	"testing"
	"time"

	"github.com/gcclub/membercard/internal/model"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/password"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the login password of every seeded member.
const TestPassword = "password123"

func init() {
	password.Cost = bcrypt.MinCost
}

// SeedMember inserts a login and member record directly, bypassing the ID
// allocator. Seed before creating members through the service so the
// allocator continues after the highest seeded ID.
func SeedMember(t *testing.T, db *gorm.DB, memberID string, role model.Role, joinDate time.Time) *model.Member {
	t.Helper()

	hashed, err := password.Hash(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := model.NewUser(memberID, hashed)
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", memberID, err)
	}

	member := model.NewMember("ชื่อ"+memberID, "นามสกุล", joinDate)
	member.MemberID = memberID
	member.UserID = user.ID
	member.Role = role
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to seed member %s: %v", memberID, err)
	}
	return member
}

// SeedStaffUser inserts a login without a member record.
func SeedStaffUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hashed, err := password.Hash(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := model.NewUser(username, hashed)
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

// ActorOf builds the gate's view of a seeded member.
func ActorOf(member *model.Member) sharedContext.Actor {
	return sharedContext.Actor{
		UserID:   member.UserID,
		MemberPK: member.ID,
		MemberID: member.MemberID,
		Role:     member.Role,
	}
}
