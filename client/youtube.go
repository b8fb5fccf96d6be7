// Package client implements the upstream API clients used by the pipeline
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/andkntr/youtube-comments-extract/model"
)

const (
	// maxThreadsPerPage is the largest page size the comment-thread listing accepts
	maxThreadsPerPage = 100

	// maxIDsPerBatch is the largest ID list the video detail call accepts
	maxIDsPerBatch = 50
)

// YouTubeDataClient implements DataClient against the YouTube Data API v3.
type YouTubeDataClient struct {
	service *ytapi.Service
	apiKey  string
	timeout time.Duration
}

// NewYouTubeDataClient creates a new YouTube data client. The client is not
// usable until Connect has been called.
func NewYouTubeDataClient(apiKey string, timeout time.Duration) (*YouTubeDataClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &YouTubeDataClient{
		apiKey:  apiKey,
		timeout: timeout,
	}, nil
}

// Connect establishes a connection to the YouTube API
func (c *YouTubeDataClient) Connect(ctx context.Context) error {
	log.Info().Msg("Connecting to YouTube API")

	httpClient := &http.Client{
		Timeout: c.timeout,
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(c.apiKey), option.WithHTTPClient(httpClient))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.service = service
	log.Info().Msg("Connected to YouTube API successfully")
	return nil
}

// Disconnect closes the connection to the YouTube API
func (c *YouTubeDataClient) Disconnect(ctx context.Context) error {
	// No explicit disconnect needed for the YouTube API client
	c.service = nil
	return nil
}

// ListCommentThreads returns one page of comment threads for a video,
// replies included inline as far as the API returns them.
func (c *YouTubeDataClient) ListCommentThreads(ctx context.Context, videoID, pageToken string) (*model.ThreadPage, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	call := c.service.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(videoID).
		MaxResults(maxThreadsPerPage).
		TextFormat("plainText").
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		log.Error().Err(err).Str("video_id", videoID).Msg("Failed to list comment threads")
		return nil, upstream("commentThreads.list", err)
	}

	page := &model.ThreadPage{
		Threads:       make([]model.CommentThread, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}

	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}

		thread := model.CommentThread{
			TopLevel: commentFromSnippet(item.Snippet.TopLevelComment.Snippet),
		}

		if item.Replies != nil {
			thread.Replies = make([]model.CommentRecord, 0, len(item.Replies.Comments))
			for _, reply := range item.Replies.Comments {
				if reply.Snippet == nil {
					continue
				}
				thread.Replies = append(thread.Replies, commentFromSnippet(reply.Snippet))
			}
		}

		page.Threads = append(page.Threads, thread)
	}

	log.Debug().
		Str("video_id", videoID).
		Int("thread_count", len(page.Threads)).
		Bool("has_next_page", page.NextPageToken != "").
		Msg("Comment thread page retrieved")

	return page, nil
}

// GetChannel retrieves a channel's public summary
func (c *YouTubeDataClient) GetChannel(ctx context.Context, channelID string) (*model.ChannelSummary, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	log.Info().Str("channel_id", channelID).Msg("Fetching YouTube channel info")

	response, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).Msg("Failed to get channel from YouTube API")
		return nil, upstream("channels.list", err)
	}

	if len(response.Items) == 0 {
		log.Warn().Str("channel_id", channelID).Msg("Channel not found on YouTube")
		return nil, fmt.Errorf("channel %s: %w", channelID, model.ErrNotFound)
	}

	item := response.Items[0]
	createdAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

	summary := &model.ChannelSummary{
		ID:          item.Id,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Country:     item.Snippet.Country,
		CreatedAt:   createdAt,
	}
	if item.Statistics != nil {
		summary.SubscriberCount = int64(item.Statistics.SubscriberCount)
		summary.ViewCount = int64(item.Statistics.ViewCount)
		summary.VideoCount = int64(item.Statistics.VideoCount)
	}

	log.Info().
		Str("channel_id", summary.ID).
		Str("title", summary.Title).
		Int64("subscribers", summary.SubscriberCount).
		Int64("view_count", summary.ViewCount).
		Int64("video_count", summary.VideoCount).
		Msg("YouTube channel info retrieved")

	return summary, nil
}

// ListRecentVideoIDs returns up to limit video IDs from the channel's
// uploads playlist, newest first.
func (c *YouTubeDataClient) ListRecentVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	response, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).Msg("Failed to get channel from YouTube API")
		return nil, upstream("channels.list", err)
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, model.ErrNotFound)
	}

	uploadsPlaylistID := response.Items[0].ContentDetails.RelatedPlaylists.Uploads

	ids := make([]string, 0, limit)
	var nextPageToken string
	for len(ids) < limit {
		playlistCall := c.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(uploadsPlaylistID).
			MaxResults(int64(min(maxIDsPerBatch, limit-len(ids)))).
			Context(ctx)

		if nextPageToken != "" {
			playlistCall = playlistCall.PageToken(nextPageToken)
		}

		playlistResponse, err := playlistCall.Do()
		if err != nil {
			log.Error().Err(err).Str("playlist_id", uploadsPlaylistID).Msg("Failed to list uploads playlist")
			return nil, upstream("playlistItems.list", err)
		}

		if len(playlistResponse.Items) == 0 {
			break
		}

		for _, item := range playlistResponse.Items {
			ids = append(ids, item.ContentDetails.VideoId)
			if len(ids) >= limit {
				break
			}
		}

		if playlistResponse.NextPageToken == "" {
			break
		}
		nextPageToken = playlistResponse.NextPageToken
	}

	log.Debug().
		Str("channel_id", channelID).
		Int("video_count", len(ids)).
		Msg("Recent video IDs retrieved")

	return ids, nil
}

// GetVideosByID retrieves video details in batches of at most 50 IDs
func (c *YouTubeDataClient) GetVideosByID(ctx context.Context, ids []string) ([]*model.VideoRecord, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	videos := make([]*model.VideoRecord, 0, len(ids))
	for _, batch := range chunkIDs(ids, maxIDsPerBatch) {
		response, err := c.service.Videos.List([]string{"snippet", "statistics"}).
			Id(batch...).
			Context(ctx).
			Do()
		if err != nil {
			log.Error().Err(err).Strs("video_ids", batch).Msg("Failed to get video details")
			return nil, upstream("videos.list", err)
		}

		for _, item := range response.Items {
			publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			if err != nil {
				log.Warn().Err(err).Str("date", item.Snippet.PublishedAt).Msg("Failed to parse video published date")
			}

			video := &model.VideoRecord{
				ID:           item.Id,
				Title:        item.Snippet.Title,
				PublishedAt:  publishedAt,
				ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
				URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id),
			}
			if item.Statistics != nil {
				video.ViewCount = int64(item.Statistics.ViewCount)
				video.LikeCount = int64(item.Statistics.LikeCount)
				video.CommentCount = int64(item.Statistics.CommentCount)
			}

			videos = append(videos, video)
		}
	}

	log.Debug().Int("requested", len(ids)).Int("retrieved", len(videos)).Msg("Video details retrieved")

	return videos, nil
}

// SearchChannelID runs a free-text channel search and returns the first
// result's channel ID.
func (c *YouTubeDataClient) SearchChannelID(ctx context.Context, query string) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("YouTube client not connected")
	}

	log.Info().Str("query", query).Msg("Searching for channel")

	response, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Channel search failed")
		return "", upstream("search.list", err)
	}

	if len(response.Items) == 0 || response.Items[0].Id == nil || response.Items[0].Id.ChannelId == "" {
		log.Warn().Str("query", query).Msg("Channel search returned no results")
		return "", fmt.Errorf("channel search %q: %w", query, model.ErrNotFound)
	}

	channelID := response.Items[0].Id.ChannelId
	log.Info().Str("query", query).Str("channel_id", channelID).Msg("Channel search matched")

	return channelID, nil
}

// GetVideoDetails returns the channel title and video title for a video
func (c *YouTubeDataClient) GetVideoDetails(ctx context.Context, videoID string) (string, string, error) {
	if c.service == nil {
		return "", "", fmt.Errorf("YouTube client not connected")
	}

	response, err := c.service.Videos.List([]string{"snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("video_id", videoID).Msg("Failed to get video details")
		return "", "", upstream("videos.list", err)
	}

	if len(response.Items) == 0 {
		return "", "", fmt.Errorf("video %s: %w", videoID, model.ErrNotFound)
	}

	snippet := response.Items[0].Snippet
	return snippet.ChannelTitle, snippet.Title, nil
}

// commentFromSnippet converts an API comment snippet to a CommentRecord.
// ReplyTo is left empty; the collector fills it in for replies.
func commentFromSnippet(s *ytapi.CommentSnippet) model.CommentRecord {
	publishedAt, _ := time.Parse(time.RFC3339, s.PublishedAt)
	return model.CommentRecord{
		Author:      s.AuthorDisplayName,
		Text:        s.TextOriginal,
		LikeCount:   s.LikeCount,
		PublishedAt: publishedAt,
	}
}

// chunkIDs splits ids into batches of at most size elements, preserving order.
func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// bestThumbnail returns the highest-resolution thumbnail URL available.
func bestThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*ytapi.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

// Helper function to get the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
