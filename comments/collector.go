// Package comments implements paginated collection of a video's comment
// threads, flattening top-level comments and their inline replies into a
// single ordered list.
package comments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/andkntr/youtube-comments-extract/model"
)

// DefaultMaxPages bounds how many thread pages a single collection fetches.
// With 100 threads per page this caps quota use and latency regardless of
// the video's true comment volume.
const DefaultMaxPages = 10

// ThreadLister is the slice of the upstream client the collector needs.
type ThreadLister interface {
	ListCommentThreads(ctx context.Context, videoID, pageToken string) (*model.ThreadPage, error)
}

// VideoDetailer looks up a video's channel and title for artifact naming.
type VideoDetailer interface {
	GetVideoDetails(ctx context.Context, videoID string) (channelTitle, videoTitle string, err error)
}

// Collector paginates through a video's comment threads.
type Collector struct {
	lister ThreadLister
}

// NewCollector creates a collector backed by the given thread lister.
func NewCollector(lister ThreadLister) *Collector {
	return &Collector{lister: lister}
}

// Collect fetches up to maxPages pages of comment threads for a video and
// flattens them. Each thread contributes its top-level comment followed by
// its inline replies, with each reply's ReplyTo set to the top-level
// author. Ordering is insertion order as returned by pagination.
//
// Any fetch error aborts the whole collection; partial results are
// discarded, not returned. maxPages values below 1 fall back to
// DefaultMaxPages.
func (c *Collector) Collect(ctx context.Context, videoID string, maxPages int) ([]model.CommentRecord, error) {
	if videoID == "" {
		return nil, fmt.Errorf("empty video ID: %w", model.ErrInvalidInput)
	}
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}

	log.Info().Str("video_id", videoID).Int("max_pages", maxPages).Msg("Collecting comments")

	var records []model.CommentRecord
	var pageToken string
	pageCount := 0

	for {
		page, err := c.lister.ListCommentThreads(ctx, videoID, pageToken)
		if err != nil {
			log.Error().Err(err).Str("video_id", videoID).Int("page", pageCount).Msg("Comment collection aborted")
			return nil, fmt.Errorf("fetch comment page %d: %w", pageCount, err)
		}

		for _, thread := range page.Threads {
			top := thread.TopLevel
			top.ReplyTo = ""
			records = append(records, top)

			for _, reply := range thread.Replies {
				reply.ReplyTo = top.Author
				records = append(records, reply)
			}
		}

		pageToken = page.NextPageToken
		pageCount++
		if pageToken == "" || pageCount >= maxPages {
			break
		}
	}

	log.Info().
		Str("video_id", videoID).
		Int("pages", pageCount).
		Int("comment_count", len(records)).
		Msg("Comment collection complete")

	return records, nil
}

// VideoDetails returns the channel title and video title used to name an
// exported artifact, falling back to placeholders when the video cannot be
// looked up.
func VideoDetails(ctx context.Context, detailer VideoDetailer, videoID string) (string, string) {
	channelTitle, videoTitle, err := detailer.GetVideoDetails(ctx, videoID)
	if err != nil {
		log.Warn().Err(err).Str("video_id", videoID).Msg("Failed to get video details, using placeholders")
		return "UnknownChannel", "UnknownTitle"
	}
	return channelTitle, videoTitle
}
