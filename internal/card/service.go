// Package card resolves public card links to the member they belong to.
package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gcclub/membercard/internal/shared/storage"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var cardViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "card_views_total",
		Help: "Total number of public card views by presentation",
	},
	[]string{"view"},
)

type CardService struct {
	db               *gorm.DB
	cfg              *config.Config
	memberRepository *member.MemberRepository
	photos           storage.PhotoStore
	now              func() time.Time
}

func NewCardService(db *gorm.DB, cfg *config.Config, memberRepository *member.MemberRepository, photos storage.PhotoStore) *CardService {
	return &CardService{
		db:               db,
		cfg:              cfg,
		memberRepository: memberRepository,
		photos:           photos,
		now:              time.Now,
	}
}

func (s *CardService) SetClock(now func() time.Time) {
	s.now = now
}

// Resolve finds the member behind a public identifier. Malformed identifiers
// are indistinguishable from unknown ones.
func (s *CardService) Resolve(ctx context.Context, publicID string) (*model.Member, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, fmt.Errorf("public id %q: %w", publicID, ErrCardNotFound)
	}

	m, err := s.memberRepository.FindByPublicID(ctx, s.db, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("public id %s: %w", publicID, ErrCardNotFound)
		}
		return nil, fmt.Errorf("find card %s: %w", publicID, err)
	}
	return m, nil
}

// Card returns the active presentation, or redirected=true when the
// membership has expired and the client should go to the expired page.
func (s *CardService) Card(ctx context.Context, publicID string, viewOnly bool) (resp *CardResponse, redirected bool, err error) {
	m, err := s.Resolve(ctx, publicID)
	if err != nil {
		return nil, false, err
	}
	if m.IsExpired(s.now()) {
		return nil, true, nil
	}
	return s.present(ctx, m, ViewActive, viewOnly), false, nil
}

// Expired renders the expired presentation regardless of the actual status.
func (s *CardService) Expired(ctx context.Context, publicID string, viewOnly bool) (*CardResponse, error) {
	m, err := s.Resolve(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, m, ViewExpired, viewOnly), nil
}

func (s *CardService) Print(ctx context.Context, publicID string) (*CardResponse, error) {
	m, err := s.Resolve(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, m, ViewPrint, true), nil
}

// QR returns the PNG QR code of the member's public card URL.
func (s *CardService) QR(ctx context.Context, publicID string) ([]byte, error) {
	m, err := s.Resolve(ctx, publicID)
	if err != nil {
		return nil, err
	}
	png, err := QRPNG(s.cfg.CardURL(m.PublicID), QRSize*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQRFailed, err)
	}
	return png, nil
}

// Photo opens the member's stored photo. The caller closes the body.
func (s *CardService) Photo(ctx context.Context, publicID string) (*storage.Photo, error) {
	m, err := s.Resolve(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if m.PhotoPath() == "" || s.photos == nil {
		return nil, fmt.Errorf("card %s has no photo: %w", publicID, member.ErrPhotoNotFound)
	}

	photo, err := s.photos.Open(ctx, m.PhotoPath())
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return nil, fmt.Errorf("photo %s: %w", m.PhotoPath(), member.ErrPhotoNotFound)
		}
		return nil, err
	}
	return photo, nil
}

func (s *CardService) present(ctx context.Context, m *model.Member, view string, viewOnly bool) *CardResponse {
	today := s.now()
	cardURL := s.cfg.CardURL(m.PublicID)

	qr, err := QRDataURL(cardURL, QRSize)
	if err != nil {
		// The card is still usable without the image.
		logger.FromContext(ctx).Warn("qr generation failed", "member_id", m.MemberID, "error", err)
	}
	cardViewsTotal.WithLabelValues(view).Inc()

	summary := member.Summarize(m, today)
	return &CardResponse{
		View:           view,
		ViewOnly:       viewOnly,
		MemberID:       m.MemberID,
		PublicID:       m.PublicID,
		FullName:       summary.FullName,
		FullNameEn:     m.FullNameEn(),
		Nickname:       m.Nickname,
		BloodGroup:     string(m.BloodGroup),
		Role:           summary.Role,
		PhotoURL:       member.PhotoURL(m),
		JoinDate:       model.FormatDate(m.JoinDate),
		ExpireDate:     summary.ExpireDate,
		Status:         summary.Status,
		IsActive:       m.IsActive,
		IsValid:        m.IsValid(today),
		IsExpiringSoon: m.IsExpiringSoon(today, s.cfg.Membership.ExpiringWindowDays),
		Today:          model.DateOf(today).Format(time.DateOnly),
		CardURL:        cardURL,
		QRCode:         qr,
	}
}
