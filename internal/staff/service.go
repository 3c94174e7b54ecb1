package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/database"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gcclub/membercard/internal/shared/password"
	"gorm.io/gorm"
)

// StaffLastName is the placeholder surname of registered staff accounts.
const StaffLastName = "Staff"

type StaffService struct {
	db               *gorm.DB
	cfg              *config.Config
	memberRepository *member.MemberRepository
	userRepository   *member.UserRepository
	allocator        *member.IDAllocator
	now              func() time.Time
}

func NewStaffService(
	db *gorm.DB,
	cfg *config.Config,
	memberRepository *member.MemberRepository,
	userRepository *member.UserRepository,
	allocator *member.IDAllocator,
) *StaffService {
	return &StaffService{
		db:               db,
		cfg:              cfg,
		memberRepository: memberRepository,
		userRepository:   userRepository,
		allocator:        allocator,
		now:              time.Now,
	}
}

// SetClock replaces the time source used to evaluate "today".
func (s *StaffService) SetClock(now func() time.Time) {
	s.now = now
}

// Dashboard summarizes membership status as of today.
func (s *StaffService) Dashboard(ctx context.Context, actor sharedContext.Actor) (*DashboardResponse, error) {
	today := model.DateOf(s.now())
	window := today.AddDate(0, 0, s.cfg.Membership.ExpiringWindowDays)

	total, err := s.memberRepository.CountMatching(ctx, s.db, "")
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	active, err := s.memberRepository.CountActive(ctx, s.db, today)
	if err != nil {
		return nil, fmt.Errorf("count active members: %w", err)
	}
	expired, err := s.memberRepository.CountExpired(ctx, s.db, today)
	if err != nil {
		return nil, fmt.Errorf("count expired members: %w", err)
	}

	expiringSoon, err := s.memberRepository.ExpiringBetween(ctx, s.db, today, window, DashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("list expiring members: %w", err)
	}
	recentlyExpired, err := s.memberRepository.RecentlyExpired(ctx, s.db, today, DashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("list expired members: %w", err)
	}
	newest, err := s.memberRepository.Newest(ctx, s.db, DashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("list new members: %w", err)
	}

	return &DashboardResponse{
		Today:            today.Format(time.DateOnly),
		Total:            total,
		Active:           active,
		Expired:          expired,
		ExpiringSoon:     summarize(expiringSoon, today),
		RecentlyExpired:  summarize(recentlyExpired, today),
		NewMembers:       summarize(newest, today),
		CanRegisterStaff: actor.Role.CanRegisterStaff(),
	}, nil
}

func summarize(members []model.Member, today time.Time) []member.MemberSummary {
	out := make([]member.MemberSummary, 0, len(members))
	for i := range members {
		out = append(out, member.Summarize(&members[i], today))
	}
	return out
}

// Register creates a staff login with the chosen username and a STAFF member
// record, so the new account passes the staff gate.
func (s *StaffService) Register(ctx context.Context, actor sharedContext.Actor, request *RegisterRequest) (*RegisterResponse, error) {
	log := logger.FromContext(ctx)

	hashed, err := password.Hash(request.Password)
	if err != nil {
		return nil, err
	}

	staff := model.NewMember(request.Username, StaffLastName, s.now())
	staff.Role = model.RoleStaff

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.userRepository.IsExist(ctx, tx, request.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return fmt.Errorf("username %s: %w", request.Username, member.ErrUsernameTaken)
		}

		user := model.NewUser(request.Username, hashed)
		user.CreatedBy = &actor.UserID
		if err := s.userRepository.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		memberID, err := s.allocator.Next(ctx, tx)
		if err != nil {
			return fmt.Errorf("allocate member id: %w", err)
		}

		staff.MemberID = memberID
		staff.UserID = user.ID
		staff.CreatedBy = &actor.UserID
		if err := s.memberRepository.Create(ctx, tx, staff); err != nil {
			return fmt.Errorf("create staff member: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Warn("staff registration failed", "username", request.Username, "error", err)
		return nil, err
	}

	log.Info("staff registered", "username", request.Username, "member_id", staff.MemberID, "created_by", actor.MemberID)

	return &RegisterResponse{
		Username: request.Username,
		MemberID: staff.MemberID,
		Message:  fmt.Sprintf("สร้างบัญชี Staff '%s' เรียบร้อยแล้ว", request.Username),
		Redirect: access.StaffLandingURL,
	}, nil
}
