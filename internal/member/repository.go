package member

import (
	"context"
	"strings"
	"time"

	"github.com/gcclub/membercard/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (m *MemberRepository) Save(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Save(member).Error
}

func (m *MemberRepository) Delete(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Delete(member).Error
}

func (m *MemberRepository) FindByMemberID(ctx context.Context, db *gorm.DB, memberID string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("member_id = ?", memberID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByPublicID(ctx context.Context, db *gorm.DB, publicID string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("public_id = ?", publicID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// escapeLike makes q match literally inside a LIKE pattern.
func escapeLike(q string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
}

// search narrows to members whose first name, last name, member ID or nickname
// contains q, ignoring case. An empty q matches everyone.
func search(db *gorm.DB, q string) *gorm.DB {
	q = strings.TrimSpace(q)
	if q == "" {
		return db
	}
	pattern := "%" + strings.ToLower(escapeLike(q)) + "%"
	return db.Where(
		`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(member_id) LIKE ? ESCAPE '\' OR LOWER(nickname) LIKE ? ESCAPE '\'`,
		pattern, pattern, pattern, pattern,
	)
}

// Search returns one page of matching members, newest first.
func (m *MemberRepository) Search(ctx context.Context, db *gorm.DB, q string, offset, limit int) ([]model.Member, error) {
	var members []model.Member
	err := search(db.WithContext(ctx).Model(&model.Member{}), q).
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (m *MemberRepository) CountMatching(ctx context.Context, db *gorm.DB, q string) (int64, error) {
	var count int64
	err := search(db.WithContext(ctx).Model(&model.Member{}), q).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive counts members whose expiry is today or later.
func (m *MemberRepository) CountActive(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Member{}).
		Where("expire_date >= ?", model.DateOf(today)).
		Count(&count).Error
	return count, err
}

// CountExpired counts members with no expiry or one before today.
func (m *MemberRepository) CountExpired(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Member{}).
		Where("expire_date IS NULL OR expire_date < ?", model.DateOf(today)).
		Count(&count).Error
	return count, err
}

// ExpiringBetween lists members expiring in [from, to], soonest first.
func (m *MemberRepository) ExpiringBetween(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]model.Member, error) {
	var members []model.Member
	err := db.WithContext(ctx).
		Where("expire_date >= ? AND expire_date <= ?", model.DateOf(from), model.DateOf(to)).
		Order("expire_date asc").
		Limit(limit).
		Find(&members).Error
	return members, err
}

// RecentlyExpired lists members that expired before today, most recent first.
func (m *MemberRepository) RecentlyExpired(ctx context.Context, db *gorm.DB, today time.Time, limit int) ([]model.Member, error) {
	var members []model.Member
	err := db.WithContext(ctx).
		Where("expire_date < ?", model.DateOf(today)).
		Order("expire_date desc").
		Limit(limit).
		Find(&members).Error
	return members, err
}

// Newest lists the most recently joined members.
func (m *MemberRepository) Newest(ctx context.Context, db *gorm.DB, limit int) ([]model.Member, error) {
	var members []model.Member
	err := db.WithContext(ctx).
		Order("join_date desc").
		Order("id desc").
		Limit(limit).
		Find(&members).Error
	return members, err
}

// FindInBatches walks every member in primary key order.
func (m *MemberRepository) FindInBatches(ctx context.Context, db *gorm.DB, size int, fn func(batch []model.Member) error) error {
	var batch []model.Member
	return db.WithContext(ctx).
		Order("id asc").
		FindInBatches(&batch, size, func(_ *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
