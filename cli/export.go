package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/andkntr/youtube-comments-extract/model"
)

var unsafeFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeFilename replaces characters that are invalid in file names.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ExportFilename builds the CSV artifact name from the video's channel and
// title.
func ExportFilename(channelTitle, videoTitle string) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(channelTitle), SanitizeFilename(videoTitle))
}

// WriteCommentsCSV writes collected comments as CSV with a header row.
func WriteCommentsCSV(w io.Writer, records []model.CommentRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"author", "text", "like_count", "published_at", "reply_to"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Author,
			r.Text,
			strconv.FormatInt(r.LikeCount, 10),
			r.PublishedAt.Format(time.RFC3339),
			r.ReplyTo,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
