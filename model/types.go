// Package model contains the data types shared across the aggregation pipeline
package model

import "time"

// StreamKind classifies an encoding by which media streams it carries
type StreamKind string

const (
	// KindAudioVideo is an encoding carrying both an audio and a video stream
	KindAudioVideo StreamKind = "audio+video"

	// KindVideoOnly is an encoding carrying a video stream only
	KindVideoOnly StreamKind = "video-only"

	// KindAudioOnly is an encoding carrying an audio stream only
	KindAudioOnly StreamKind = "audio-only"
)

// CommentRecord is a single flattened comment. A top-level comment has an
// empty ReplyTo; a reply carries the author name of its parent top-level
// comment.
type CommentRecord struct {
	Author      string
	Text        string
	LikeCount   int64
	PublishedAt time.Time
	ReplyTo     string
}

// IsReply reports whether the record is a reply to a top-level comment.
func (c CommentRecord) IsReply() bool {
	return c.ReplyTo != ""
}

// CommentThread is one pagination unit: a top-level comment plus the replies
// the listing call returned inline. Replies beyond what the platform inlines
// are not fetched.
type CommentThread struct {
	TopLevel CommentRecord
	Replies  []CommentRecord
}

// ThreadPage is one page of comment threads together with the continuation
// token for the next page. An empty NextPageToken means the listing is
// exhausted.
type ThreadPage struct {
	Threads       []CommentThread
	NextPageToken string
}

// ChannelSummary is a read-only snapshot of a channel's public summary.
// Fields may be empty when the channel's privacy settings hide them.
type ChannelSummary struct {
	ID              string
	Title           string
	Description     string
	Country         string
	CreatedAt       time.Time
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

// VideoRecord is a single video with its public statistics. Counts default
// to 0 when the platform does not expose them.
type VideoRecord struct {
	ID           string
	Title        string
	PublishedAt  time.Time
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	ThumbnailURL string
	URL          string
}

// FormatDescriptor describes one downloadable encoding of a video. Code is
// an opaque token valid only for the probe that produced it. SizeMB is nil
// when the source does not report a size.
type FormatDescriptor struct {
	Kind       StreamKind
	Resolution string
	SizeMB     *float64
	Code       string
}
