package client

import (
	"context"

	"github.com/andkntr/youtube-comments-extract/model"
)

// DataClient is the metadata/search upstream the pipeline depends on.
// Implementations must be safe for sequential reuse across calls; nothing
// in the pipeline calls them concurrently.
type DataClient interface {
	// Connect establishes a connection to the upstream API
	Connect(ctx context.Context) error

	// Disconnect closes the connection to the upstream API
	Disconnect(ctx context.Context) error

	// ListCommentThreads returns one page of up to 100 comment threads for a
	// video. Pass an empty pageToken for the first page.
	ListCommentThreads(ctx context.Context, videoID, pageToken string) (*model.ThreadPage, error)

	// GetChannel retrieves a channel's public summary. Returns
	// model.ErrNotFound when the platform reports zero matching channels.
	GetChannel(ctx context.Context, channelID string) (*model.ChannelSummary, error)

	// ListRecentVideoIDs returns up to limit video IDs for a channel,
	// ordered by publish date descending.
	ListRecentVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error)

	// GetVideosByID retrieves video details in batches of at most 50 IDs
	// per call. IDs the platform does not know are silently absent from the
	// result.
	GetVideosByID(ctx context.Context, ids []string) ([]*model.VideoRecord, error)

	// SearchChannelID runs a free-text channel search and returns the first
	// result's channel ID, or model.ErrNotFound when the search yields
	// nothing. Best-effort: the top match is not guaranteed to be the
	// channel the caller meant.
	SearchChannelID(ctx context.Context, query string) (string, error)

	// GetVideoDetails returns the channel title and video title for a
	// video, or model.ErrNotFound when the video does not exist.
	GetVideoDetails(ctx context.Context, videoID string) (channelTitle, videoTitle string, err error)
}
