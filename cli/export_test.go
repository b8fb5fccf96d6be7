package cli

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andkntr/youtube-comments-extract/model"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain name`, `plain name`},
		{`a/b\c`, `a_b_c`},
		{`what? "yes": <no> | *maybe*`, `what_ _yes__ _no_ _ _maybe_`},
		{``, ``},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "Some Channel_My Video_ Part 1.csv", ExportFilename("Some Channel", `My Video: Part 1`))
}

func TestWriteCommentsCSV(t *testing.T) {
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []model.CommentRecord{
		{Author: "alice", Text: "first!", LikeCount: 3, PublishedAt: published},
		{Author: "bob", Text: "agreed,\nwith newline", LikeCount: 0, PublishedAt: published, ReplyTo: "alice"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCommentsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"author", "text", "like_count", "published_at", "reply_to"}, rows[0])
	assert.Equal(t, []string{"alice", "first!", "3", "2024-05-01T12:00:00Z", ""}, rows[1])
	assert.Equal(t, []string{"bob", "agreed,\nwith newline", "0", "2024-05-01T12:00:00Z", "alice"}, rows[2])
}
