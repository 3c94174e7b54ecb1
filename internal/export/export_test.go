package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gcclub/membercard/internal/export"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var joined = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestExport_AllColumns(t *testing.T) {
	// Given: one member with a photo and one without
	db := testutil.SetupTestDB(t)
	first := testutil.SeedMember(t, db, "GC-001", model.RoleMember, joined)
	require.NoError(t, db.Model(first).Updates(map[string]any{
		"photo":    "member_photos/gc-001.jpg",
		"nickname": "<Tom & Jerry>",
	}).Error)
	testutil.SeedMember(t, db, "GC-002", model.RoleStaff, joined)

	exporter := export.NewExporter(db, member.NewMemberRepository(), 1)
	var out bytes.Buffer

	// When
	n, err := exporter.Export(context.Background(), &out)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "GC-001", rows[0]["member_id"])
	assert.Equal(t, "2024-03-15", rows[0]["join_date"])
	assert.Equal(t, "2025-03-15", rows[0]["expire_date"])
	assert.Equal(t, "member_photos/gc-001.jpg", rows[0]["photo"])
	assert.Equal(t, "MEMBER", rows[0]["role"])
	assert.Equal(t, true, rows[0]["is_active"])
	assert.Nil(t, rows[1]["photo"])
	assert.Equal(t, "STAFF", rows[1]["role"])

	for _, key := range []string{"id", "user", "public_id", "first_name", "last_name", "first_name_en", "last_name_en", "phone", "blood_group", "address"} {
		assert.Contains(t, rows[0], key)
	}

	// Non-ASCII and HTML characters stay readable, with a 2-space indent.
	text := out.String()
	assert.Contains(t, text, "ชื่อGC-001")
	assert.Contains(t, text, "<Tom & Jerry>")
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": "), text)
	assert.True(t, strings.HasSuffix(text, "  }\n]\n"), text)
}

func TestExport_ManyBatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	for i := 1; i <= 7; i++ {
		testutil.SeedMember(t, db, fmt.Sprintf("GC-%03d", i), model.RoleMember, joined)
	}

	var out bytes.Buffer
	n, err := export.NewExporter(db, member.NewMemberRepository(), 3).Export(context.Background(), &out)

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	var rows []export.Row
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 7)
	assert.Equal(t, "GC-007", rows[6].MemberID)
}

func TestExport_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var out bytes.Buffer
	n, err := export.NewExporter(db, member.NewMemberRepository(), 0).Export(context.Background(), &out)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "[]\n", out.String())
}
