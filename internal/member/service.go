package member

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/database"
	"github.com/gcclub/membercard/internal/shared/flash"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gcclub/membercard/internal/shared/password"
	"github.com/gcclub/membercard/internal/shared/storage"
	"github.com/gcclub/membercard/internal/shared/validator"
	"gorm.io/gorm"
)

// MemberListURL is where staff land after creating, editing or deleting a member.
const MemberListURL = "/api/v1/members"

const credentialsFlashKey = "new_member_credentials"

type MemberService struct {
	db               *gorm.DB
	cfg              *config.Config
	memberRepository *MemberRepository
	userRepository   *UserRepository
	allocator        *IDAllocator
	flash            flash.Store
	photos           storage.PhotoStore // nil when photo storage is not configured
	now              func() time.Time
}

func NewMemberService(
	db *gorm.DB,
	cfg *config.Config,
	memberRepository *MemberRepository,
	userRepository *UserRepository,
	allocator *IDAllocator,
	flashStore flash.Store,
	photos storage.PhotoStore,
) *MemberService {
	return &MemberService{
		db:               db,
		cfg:              cfg,
		memberRepository: memberRepository,
		userRepository:   userRepository,
		allocator:        allocator,
		flash:            flashStore,
		photos:           photos,
		now:              time.Now,
	}
}

// SetClock replaces the time source used to evaluate "today".
func (s *MemberService) SetClock(now func() time.Time) {
	s.now = now
}

func flashOwner(userID uint32) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// FindActor resolves the member record owned by userID for the access gate.
func (s *MemberService) FindActor(ctx context.Context, userID uint32) (sharedContext.Actor, error) {
	member, err := s.memberRepository.FindByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sharedContext.Actor{}, access.ErrNoMember
		}
		return sharedContext.Actor{}, fmt.Errorf("find member by user %d: %w", userID, err)
	}
	return sharedContext.Actor{
		UserID:   userID,
		MemberPK: member.ID,
		MemberID: member.MemberID,
		Role:     member.Role,
	}, nil
}

// Create stores a new member with a freshly allocated member ID and a login
// whose username is that ID. The generated password is flashed to the creating
// actor and shown once on their next member list.
func (s *MemberService) Create(ctx context.Context, actor sharedContext.Actor, request *CreateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)
	policy := PolicyFor(actor.Role)

	member := model.NewMember(request.FirstName, request.LastName, s.now())
	if err := applyForm(member, request.Form(), policy); err != nil {
		return nil, err
	}

	tempPassword, err := password.GenerateTemporary(s.cfg.Membership.TempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("generate temporary password: %w", err)
	}
	hashed, err := password.Hash(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		memberID, err := s.allocator.Next(ctx, tx)
		if err != nil {
			return fmt.Errorf("allocate member id: %w", err)
		}

		exists, err := s.userRepository.IsExist(ctx, tx, memberID)
		if err != nil {
			return fmt.Errorf("check username %s: %w", memberID, err)
		}
		if exists {
			return fmt.Errorf("username %s: %w", memberID, ErrUsernameTaken)
		}

		user := model.NewUser(memberID, hashed)
		user.CreatedBy = &actor.UserID
		if err := s.userRepository.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		member.MemberID = memberID
		member.UserID = user.ID
		member.CreatedBy = &actor.UserID
		if err := s.memberRepository.Create(ctx, tx, member); err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("member creation failed", "created_by", actor.MemberID, "error", err)
		return nil, err
	}

	credentials := Credentials{Username: member.MemberID, Password: tempPassword}
	if err := s.flash.Put(ctx, flashOwner(actor.UserID), credentialsFlashKey, credentials); err != nil {
		// The record exists; only the one-time display is lost.
		log.Error("flash credentials failed", "member_id", member.MemberID, "error", err)
	}

	log.Info("member created",
		"member_id", member.MemberID,
		"role", member.Role.String(),
		"phone", logger.MaskPhone(member.Phone),
		"created_by", actor.MemberID,
	)

	resp := s.toResponse(member)
	return &resp, nil
}

// List returns one page of members matching the query, newest first, and pops
// any credentials flashed to the actor by a previous Create.
func (s *MemberService) List(ctx context.Context, actor sharedContext.Actor, request *ListRequest) (*ListResponse, error) {
	perPage := s.cfg.Membership.PageSize

	total, err := s.memberRepository.CountMatching(ctx, s.db, request.Query)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	page := resolvePage(request.Page, totalPages)

	members, err := s.memberRepository.Search(ctx, s.db, request.Query, (page-1)*perPage, perPage)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}

	today := s.now()
	resp := &ListResponse{
		Members:    make([]MemberSummary, 0, len(members)),
		Query:      request.Query,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: max(totalPages, 1),
	}
	for i := range members {
		resp.Members = append(resp.Members, Summarize(&members[i], today))
	}

	var credentials Credentials
	found, err := s.flash.Pop(ctx, flashOwner(actor.UserID), credentialsFlashKey, &credentials)
	if err != nil {
		logger.FromContext(ctx).Error("pop flashed credentials failed", "error", err)
	} else if found {
		resp.NewMemberCredentials = &credentials
	}

	return resp, nil
}

// resolvePage turns the raw page parameter into a page number: anything that
// is not a positive integer is page 1, and pages past the end clamp to the last.
func resolvePage(raw string, totalPages int) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = 1
	}
	return min(page, max(totalPages, 1))
}

func (s *MemberService) findByMemberID(ctx context.Context, db *gorm.DB, memberID string) (*model.Member, error) {
	member, err := s.memberRepository.FindByMemberID(ctx, db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member %s: %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("find member %s: %w", memberID, err)
	}
	return member, nil
}

func (s *MemberService) Detail(ctx context.Context, memberID string) (*MemberResponse, error) {
	member, err := s.findByMemberID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(member)
	return &resp, nil
}

// Form describes the edit form of memberID as the actor may see it.
func (s *MemberService) Form(ctx context.Context, actor sharedContext.Actor, memberID string) (*FormResponse, error) {
	member, err := s.findByMemberID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	return s.formFor(member, PolicyFor(actor.Role)), nil
}

func (s *MemberService) Update(ctx context.Context, actor sharedContext.Actor, memberID string, form *MemberForm) (*UpdateResponse, error) {
	log := logger.FromContext(ctx)

	member, err := s.findByMemberID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}

	if err := applyForm(member, *form, PolicyFor(actor.Role)); err != nil {
		log.Warn("member update rejected", "member_id", memberID, "updated_by", actor.MemberID, "error", err)
		return nil, err
	}

	member.UpdatedBy = &actor.UserID
	if err := s.memberRepository.Save(ctx, s.db, member); err != nil {
		return nil, fmt.Errorf("save member %s: %w", memberID, err)
	}

	log.Info("member updated", "member_id", memberID, "updated_by", actor.MemberID)

	return &UpdateResponse{
		Member:   s.toResponse(member),
		Message:  fmt.Sprintf("แก้ไขข้อมูล %s เรียบร้อยแล้ว", member.MemberID),
		Redirect: MemberListURL,
	}, nil
}

// SetActive switches the active flag independently of the expiry date.
func (s *MemberService) SetActive(ctx context.Context, actor sharedContext.Actor, memberID string, active bool) (*MemberResponse, error) {
	member, err := s.findByMemberID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}

	member.IsActive = active
	member.UpdatedBy = &actor.UserID
	if err := s.memberRepository.Save(ctx, s.db, member); err != nil {
		return nil, fmt.Errorf("save member %s: %w", memberID, err)
	}

	logger.FromContext(ctx).Info("member activation changed",
		"member_id", memberID,
		"is_active", active,
		"updated_by", actor.MemberID,
	)

	resp := s.toResponse(member)
	return &resp, nil
}

// DeleteConfirm renders the confirmation prompt; nothing is changed.
func (s *MemberService) DeleteConfirm(ctx context.Context, memberID string) (*DeleteConfirmResponse, error) {
	member, err := s.findByMemberID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	return &DeleteConfirmResponse{
		MemberID: member.MemberID,
		FullName: member.FullName(),
		Message:  fmt.Sprintf("ยืนยันการลบสมาชิก %s หรือไม่? การลบไม่สามารถย้อนกลับได้", member.MemberID),
	}, nil
}

// Delete removes the member's login first and then the member record, in one
// transaction. The photo object is removed afterwards on a best-effort basis.
func (s *MemberService) Delete(ctx context.Context, actor sharedContext.Actor, memberID string) (*DeleteResponse, error) {
	log := logger.FromContext(ctx)

	var photoPath string
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.findByMemberID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if member.ID == actor.MemberPK {
			return fmt.Errorf("member %s: %w", memberID, ErrDeleteSelf)
		}
		photoPath = member.PhotoPath()

		if err := s.userRepository.Delete(ctx, tx, member.UserID); err != nil {
			return fmt.Errorf("delete user %d: %w", member.UserID, err)
		}
		if err := s.memberRepository.Delete(ctx, tx, member); err != nil {
			return fmt.Errorf("delete member %s: %w", memberID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if photoPath != "" && s.photos != nil {
		if err := s.photos.Remove(ctx, photoPath); err != nil {
			log.Warn("orphaned member photo", "member_id", memberID, "photo", photoPath, "error", err)
		}
	}

	log.Info("member deleted", "member_id", memberID, "deleted_by", actor.MemberID)

	return &DeleteResponse{
		MemberID: memberID,
		Message:  fmt.Sprintf("ลบสมาชิก %s เรียบร้อยแล้ว", memberID),
		Redirect: MemberListURL,
	}, nil
}

// UploadPhoto replaces the member's photo.
func (s *MemberService) UploadPhoto(ctx context.Context, actor sharedContext.Actor, memberID string, upload PhotoUpload) (*MemberResponse, error) {
	member, err := s.findByMemberID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.replacePhoto(ctx, actor, member, upload); err != nil {
		return nil, err
	}
	resp := s.toResponse(member)
	return &resp, nil
}

func (s *MemberService) formFor(member *model.Member, policy Capability) *FormResponse {
	resp := &FormResponse{
		MemberID: member.MemberID,
		Fields:   policy.Editable,
		Values:   make(map[Field]any, len(policy.Editable)),
	}

	current := map[Field]any{
		FieldFirstName:   member.FirstName,
		FieldLastName:    member.LastName,
		FieldFirstNameEn: member.FirstNameEn,
		FieldLastNameEn:  member.LastNameEn,
		FieldNickname:    member.Nickname,
		FieldPhone:       member.Phone,
		FieldBloodGroup:  string(member.BloodGroup),
		FieldAddress:     member.Address,
		FieldPhoto:       PhotoURL(member),
		FieldRole:        member.Role.String(),
		FieldJoinDate:    model.FormatDate(member.JoinDate),
		FieldExpireDate:  model.FormatDatePtr(member.ExpireDate),
	}
	for _, f := range policy.Editable {
		resp.Values[f] = current[f]
	}

	if policy.CanEdit(FieldRole) {
		for _, r := range policy.AssignableRoles {
			resp.AssignableRoles = append(resp.AssignableRoles, r.String())
		}
	}
	return resp
}

// applyForm copies submitted fields onto member. Fields outside the policy are
// skipped. The role must be one the policy may assign unless it is unchanged.
func applyForm(member *model.Member, form MemberForm, policy Capability) error {
	setString := func(f Field, v *string, dst *string) {
		if v != nil && policy.CanEdit(f) {
			*dst = *v
		}
	}
	setString(FieldFirstName, form.FirstName, &member.FirstName)
	setString(FieldLastName, form.LastName, &member.LastName)
	setString(FieldFirstNameEn, form.FirstNameEn, &member.FirstNameEn)
	setString(FieldLastNameEn, form.LastNameEn, &member.LastNameEn)
	setString(FieldNickname, form.Nickname, &member.Nickname)
	setString(FieldAddress, form.Address, &member.Address)

	if form.Phone != nil && policy.CanEdit(FieldPhone) {
		member.Phone = validator.NormalizePhone(*form.Phone)
	}
	if form.BloodGroup != nil && policy.CanEdit(FieldBloodGroup) {
		member.BloodGroup = model.BloodGroup(*form.BloodGroup)
	}

	if form.Role != nil && policy.CanEdit(FieldRole) {
		role := model.Role(*form.Role)
		if role != member.Role && !policy.CanAssign(role) {
			return fmt.Errorf("assign role %s: %w", role, ErrRoleNotAssignable)
		}
		member.Role = role
	}

	if form.JoinDate != nil && policy.CanEdit(FieldJoinDate) {
		d, err := model.ParseDate(*form.JoinDate)
		if err != nil {
			return fmt.Errorf("join date %q: %w", *form.JoinDate, ErrInvalidDate)
		}
		member.JoinDate = model.NewDate(d)
	}
	if form.ExpireDate != nil && policy.CanEdit(FieldExpireDate) {
		d, err := model.ParseDate(*form.ExpireDate)
		if err != nil {
			return fmt.Errorf("expire date %q: %w", *form.ExpireDate, ErrInvalidDate)
		}
		member.ExpireDate = model.NewDatePtr(d)
	}

	if member.ExpireDate != nil && time.Time(*member.ExpireDate).Before(time.Time(member.JoinDate)) {
		return fmt.Errorf("expire date before join date: %w", ErrInvalidDate)
	}
	return nil
}

// PhotoURL is the public photo link of a member, nil when no photo is stored.
func PhotoURL(member *model.Member) *string {
	if member.PhotoPath() == "" {
		return nil
	}
	u := fmt.Sprintf("/member/%s/photo", member.PublicID)
	return &u
}

func (s *MemberService) toResponse(member *model.Member) MemberResponse {
	today := s.now()
	return MemberResponse{
		MemberID:       member.MemberID,
		PublicID:       member.PublicID,
		FirstName:      member.FirstName,
		LastName:       member.LastName,
		FirstNameEn:    member.FirstNameEn,
		LastNameEn:     member.LastNameEn,
		Nickname:       member.Nickname,
		Phone:          member.Phone,
		BloodGroup:     string(member.BloodGroup),
		Address:        member.Address,
		PhotoURL:       PhotoURL(member),
		JoinDate:       model.FormatDate(member.JoinDate),
		ExpireDate:     model.FormatDatePtr(member.ExpireDate),
		Role:           member.Role.String(),
		IsActive:       member.IsActive,
		Status:         member.Status(today),
		IsExpired:      member.IsExpired(today),
		IsValid:        member.IsValid(today),
		IsExpiringSoon: member.IsExpiringSoon(today, s.cfg.Membership.ExpiringWindowDays),
		CardURL:        s.cfg.CardURL(member.PublicID),
	}
}

// Summarize renders a member as a list row, evaluating status against today.
func Summarize(member *model.Member, today time.Time) MemberSummary {
	return MemberSummary{
		MemberID:   member.MemberID,
		PublicID:   member.PublicID,
		FullName:   member.FullName(),
		Nickname:   member.Nickname,
		Role:       member.Role.String(),
		ExpireDate: model.FormatDatePtr(member.ExpireDate),
		Status:     member.Status(today),
		IsActive:   member.IsActive,
	}
}
