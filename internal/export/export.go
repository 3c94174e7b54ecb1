// Package export dumps every member record to a JSON file.
package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/logger"
	"gorm.io/gorm"
)

const (
	DefaultFile      = "safe_members.json"
	DefaultBatchSize = 500
)

// Row is one exported member: every column, dates as YYYY-MM-DD and the photo
// as its storage path.
type Row struct {
	ID          uint32  `json:"id"`
	User        uint32  `json:"user"`
	MemberID    string  `json:"member_id"`
	PublicID    string  `json:"public_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FirstNameEn string  `json:"first_name_en"`
	LastNameEn  string  `json:"last_name_en"`
	Nickname    string  `json:"nickname"`
	Phone       string  `json:"phone"`
	BloodGroup  string  `json:"blood_group"`
	Address     string  `json:"address"`
	Photo       *string `json:"photo"`
	JoinDate    string  `json:"join_date"`
	ExpireDate  *string `json:"expire_date"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
}

func NewRow(m *model.Member) Row {
	return Row{
		ID:          m.ID,
		User:        m.UserID,
		MemberID:    m.MemberID,
		PublicID:    m.PublicID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		FirstNameEn: m.FirstNameEn,
		LastNameEn:  m.LastNameEn,
		Nickname:    m.Nickname,
		Phone:       m.Phone,
		BloodGroup:  string(m.BloodGroup),
		Address:     m.Address,
		Photo:       m.Photo,
		JoinDate:    model.FormatDate(m.JoinDate),
		ExpireDate:  model.FormatDatePtr(m.ExpireDate),
		Role:        m.Role.String(),
		IsActive:    m.IsActive,
	}
}

type Exporter struct {
	db               *gorm.DB
	memberRepository *member.MemberRepository
	batchSize        int
}

func NewExporter(db *gorm.DB, memberRepository *member.MemberRepository, batchSize int) *Exporter {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Exporter{db: db, memberRepository: memberRepository, batchSize: batchSize}
}

// Export writes all members to w as an indented JSON array and returns how many were written.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (int, error) {
	log := logger.FromContext(ctx)

	total, err := e.memberRepository.CountMatching(ctx, e.db, "")
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	log.Info("export started", "count", total)

	out := bufio.NewWriter(w)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")

	written := 0
	if _, err := out.WriteString("["); err != nil {
		return 0, err
	}
	err = e.memberRepository.FindInBatches(ctx, e.db, e.batchSize, func(batch []model.Member) error {
		for i := range batch {
			buf.Reset()
			if err := enc.Encode(NewRow(&batch[i])); err != nil {
				return fmt.Errorf("encode member %s: %w", batch[i].MemberID, err)
			}
			sep := ",\n  "
			if written == 0 {
				sep = "\n  "
			}
			if _, err := out.WriteString(sep); err != nil {
				return err
			}
			if _, err := out.Write(bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
				return err
			}
			written++
		}
		log.Debug("export batch written", "size", len(batch), "written", written)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("export members: %w", err)
	}

	closing := "\n]\n"
	if written == 0 {
		closing = "]\n"
	}
	if _, err := out.WriteString(closing); err != nil {
		return written, err
	}
	if err := out.Flush(); err != nil {
		return written, fmt.Errorf("flush export: %w", err)
	}

	log.Info("export finished", "written", written)
	return written, nil
}
