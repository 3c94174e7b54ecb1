package member

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gcclub/membercard/internal/model"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/logger"
)

// MaxPhotoSize is the largest accepted photo upload.
const MaxPhotoSize = 5 << 20

var photoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// PhotoUpload is a photo file received from a client.
type PhotoUpload struct {
	Body        io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// extension picks the object extension from the declared content type,
// falling back to the file name.
func (u PhotoUpload) extension() (string, bool) {
	contentType, _, _ := strings.Cut(u.ContentType, ";")
	if ext, ok := photoTypes[strings.TrimSpace(strings.ToLower(contentType))]; ok {
		return ext, true
	}
	ext := strings.ToLower(filepath.Ext(u.Filename))
	for _, known := range photoTypes {
		if ext == known || (ext == ".jpeg" && known == ".jpg") {
			return known, true
		}
	}
	return "", false
}

// replacePhoto stores the upload, points the member at it and removes the old
// object. Concurrent uploads are last-write-wins.
func (s *MemberService) replacePhoto(ctx context.Context, actor sharedContext.Actor, member *model.Member, upload PhotoUpload) error {
	log := logger.FromContext(ctx)

	if s.photos == nil {
		return ErrPhotoStorageDisabled
	}
	if upload.Size > MaxPhotoSize {
		return fmt.Errorf("photo of %d bytes: %w", upload.Size, ErrPhotoTooLarge)
	}
	ext, ok := upload.extension()
	if !ok {
		return fmt.Errorf("photo %q (%s): %w", upload.Filename, upload.ContentType, ErrPhotoInvalidType)
	}

	objectPath, err := s.photos.Save(ctx, member.MemberID, ext, upload.Body, upload.Size, upload.ContentType)
	if err != nil {
		return fmt.Errorf("store photo: %w", err)
	}

	previous := member.PhotoPath()
	member.Photo = &objectPath
	member.UpdatedBy = &actor.UserID
	if err := s.memberRepository.Save(ctx, s.db, member); err != nil {
		if rmErr := s.photos.Remove(ctx, objectPath); rmErr != nil {
			log.Warn("orphaned member photo", "photo", objectPath, "error", rmErr)
		}
		return fmt.Errorf("save member %s: %w", member.MemberID, err)
	}

	if previous != "" && previous != objectPath {
		if err := s.photos.Remove(ctx, previous); err != nil {
			log.Warn("orphaned member photo", "member_id", member.MemberID, "photo", previous, "error", err)
		}
	}

	log.Info("member photo replaced", "member_id", member.MemberID, "photo", objectPath, "updated_by", actor.MemberID)
	return nil
}
