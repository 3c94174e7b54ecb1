package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/gcclub/membercard/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IDAllocator hands out sequential member IDs from the member_sequence row.
// Next must run inside the transaction that inserts the member: the counter
// row stays locked until that transaction ends, so concurrent creators queue
// behind each other instead of reading the same last value.
type IDAllocator struct{}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next locks the counter, increments it and returns the formatted member ID.
// Numbers are never handed out twice, even after the member holding one is deleted.
func (a *IDAllocator) Next(ctx context.Context, tx *gorm.DB) (string, error) {
	seq, err := a.lock(ctx, tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq, err = a.seed(ctx, tx)
	}
	if err != nil {
		return "", err
	}

	next := seq.LastValue + 1
	if err := tx.WithContext(ctx).
		Model(&model.MemberSequence{}).
		Where("name = ?", seq.Name).
		Update("last_value", next).Error; err != nil {
		return "", fmt.Errorf("advance member sequence: %w", err)
	}

	return model.FormatMemberID(next), nil
}

func (a *IDAllocator) lock(ctx context.Context, tx *gorm.DB) (*model.MemberSequence, error) {
	var seq model.MemberSequence
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", model.MemberSequenceName).
		First(&seq).Error
	if err != nil {
		return nil, err
	}
	return &seq, nil
}

// seed creates the counter row from the last inserted member, so a database
// that predates the counter continues where its member IDs left off. Two
// creators may race to seed; the loser's insert is a no-op and both then
// block on the row lock.
func (a *IDAllocator) seed(ctx context.Context, tx *gorm.DB) (*model.MemberSequence, error) {
	start := 0

	var last model.Member
	err := tx.WithContext(ctx).
		Select("id", "member_id").
		Order("id desc").
		First(&last).Error
	switch {
	case err == nil:
		n, err := model.ParseMemberID(last.MemberID)
		if err != nil {
			return nil, fmt.Errorf("seed member sequence from member %d: %w", last.ID, err)
		}
		start = n
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find last member: %w", err)
	}

	err = tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.MemberSequence{Name: model.MemberSequenceName, LastValue: start}).Error
	if err != nil {
		return nil, fmt.Errorf("seed member sequence: %w", err)
	}

	seq, err := a.lock(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("lock member sequence: %w", err)
	}
	return seq, nil
}
