package member

import (
	"context"
	"fmt"

	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/logger"
)

// ProfileResponse is the member dashboard.
type ProfileResponse struct {
	Member      MemberResponse `json:"member"`
	IsStaffSide bool           `json:"isStaffSide"`
	CardPath    string         `json:"cardPath"`
	Landing     string         `json:"landing"`
}

// CardPath is the public card page of a member.
func CardPath(publicID string) string {
	return fmt.Sprintf("/member/%s/", publicID)
}

// self loads the actor's own record. The gate already proved it exists, so a
// miss here means it was deleted mid-request.
func (s *MemberService) self(ctx context.Context, actor sharedContext.Actor) (*model.Member, error) {
	return s.findByMemberID(ctx, s.db, actor.MemberID)
}

func (s *MemberService) Profile(ctx context.Context, actor sharedContext.Actor) (*ProfileResponse, error) {
	member, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		Member:      s.toResponse(member),
		IsStaffSide: member.Role.IsStaffSide(),
		CardPath:    CardPath(member.PublicID),
		Landing:     access.LandingFor(member.Role),
	}, nil
}

// ProfileForm is the actor's own edit form, restricted by their role.
func (s *MemberService) ProfileForm(ctx context.Context, actor sharedContext.Actor) (*FormResponse, error) {
	member, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.formFor(member, PolicyFor(member.Role)), nil
}

// UpdateProfile applies a self-service edit. Members land back on their
// dashboard, staff on the staff dashboard.
func (s *MemberService) UpdateProfile(ctx context.Context, actor sharedContext.Actor, form *MemberForm) (*UpdateResponse, error) {
	log := logger.FromContext(ctx)

	member, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	landing := access.LandingFor(member.Role)

	if err := applyForm(member, *form, PolicyFor(member.Role)); err != nil {
		log.Warn("profile update rejected", "member_id", member.MemberID, "error", err)
		return nil, err
	}

	member.UpdatedBy = &actor.UserID
	if err := s.memberRepository.Save(ctx, s.db, member); err != nil {
		return nil, fmt.Errorf("save profile %s: %w", member.MemberID, err)
	}

	log.Info("profile updated", "member_id", member.MemberID)

	return &UpdateResponse{
		Member:   s.toResponse(member),
		Message:  "บันทึกโปรไฟล์เรียบร้อยแล้ว",
		Redirect: landing,
	}, nil
}

func (s *MemberService) UploadProfilePhoto(ctx context.Context, actor sharedContext.Actor, upload PhotoUpload) (*MemberResponse, error) {
	member, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := s.replacePhoto(ctx, actor, member, upload); err != nil {
		return nil, err
	}
	resp := s.toResponse(member)
	return &resp, nil
}

// MyCardPath resolves the actor's own public card page.
func (s *MemberService) MyCardPath(ctx context.Context, actor sharedContext.Actor) (string, error) {
	member, err := s.self(ctx, actor)
	if err != nil {
		return "", err
	}
	return CardPath(member.PublicID), nil
}
