// Package stats aggregates a channel's public summary and recent-video
// statistics into derived health metrics.
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/andkntr/youtube-comments-extract/model"
)

const (
	// DefaultMaxVideos is how many recent videos feed the aggregation when
	// the caller does not say otherwise
	DefaultMaxVideos = 10

	// maxVideosCap is the hard cap on recent videos per report
	maxVideosCap = 50
)

// VideoSource is the slice of the upstream client the aggregator needs.
type VideoSource interface {
	GetChannel(ctx context.Context, channelID string) (*model.ChannelSummary, error)
	ListRecentVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error)
	GetVideosByID(ctx context.Context, ids []string) ([]*model.VideoRecord, error)
}

// Report holds a channel summary, its most recent videos, and metrics
// derived from them. The metric pools exclude zero-view records, so a
// not-yet-indexed upload neither skews the average nor divides by zero;
// the like-ratio pool additionally excludes zero-like records. HasViewStats
// and HasLikeRatio report whether the respective pools were non-empty.
type Report struct {
	Summary *model.ChannelSummary
	Videos  []*model.VideoRecord

	MeanViews    float64
	MedianViews  float64
	HasViewStats bool

	// LikeRatioPct is the mean like-to-view ratio as a percentage,
	// rounded to two decimals.
	LikeRatioPct float64
	HasLikeRatio bool
}

// Aggregator computes channel reports.
type Aggregator struct {
	source VideoSource
}

// NewAggregator creates an aggregator backed by the given video source.
func NewAggregator(source VideoSource) *Aggregator {
	return &Aggregator{source: source}
}

// Aggregate fetches the channel summary and up to maxVideos most recent
// videos, then reduces them into a Report. maxVideos values below 1 fall
// back to DefaultMaxVideos; values above 50 are clamped.
func (a *Aggregator) Aggregate(ctx context.Context, channelID string, maxVideos int) (*Report, error) {
	if channelID == "" {
		return nil, fmt.Errorf("empty channel ID: %w", model.ErrInvalidInput)
	}
	if maxVideos < 1 {
		maxVideos = DefaultMaxVideos
	}
	if maxVideos > maxVideosCap {
		maxVideos = maxVideosCap
	}

	summary, err := a.source.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	ids, err := a.source.ListRecentVideoIDs(ctx, channelID, maxVideos)
	if err != nil {
		return nil, fmt.Errorf("list recent videos: %w", err)
	}

	var videos []*model.VideoRecord
	if len(ids) > 0 {
		videos, err = a.source.GetVideosByID(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("fetch video details: %w", err)
		}
	}

	report := &Report{
		Summary: summary,
		Videos:  videos,
	}
	report.MeanViews, report.MedianViews, report.HasViewStats = meanMedianViews(videos)
	report.LikeRatioPct, report.HasLikeRatio = meanLikeRatio(videos)

	log.Info().
		Str("channel_id", channelID).
		Int("video_count", len(videos)).
		Bool("has_view_stats", report.HasViewStats).
		Bool("has_like_ratio", report.HasLikeRatio).
		Msg("Channel report aggregated")

	return report, nil
}

// meanMedianViews reduces view counts over records with ViewCount > 0.
func meanMedianViews(videos []*model.VideoRecord) (mean, median float64, ok bool) {
	views := make([]int64, 0, len(videos))
	var total int64
	for _, v := range videos {
		if v.ViewCount > 0 {
			views = append(views, v.ViewCount)
			total += v.ViewCount
		}
	}

	if len(views) == 0 {
		return 0, 0, false
	}

	mean = float64(total) / float64(len(views))

	sort.Slice(views, func(i, j int) bool { return views[i] < views[j] })
	mid := len(views) / 2
	if len(views)%2 == 1 {
		median = float64(views[mid])
	} else {
		median = float64(views[mid-1]+views[mid]) / 2
	}

	return mean, median, true
}

// meanLikeRatio averages like/view over records where both counts are
// positive, returning a percentage rounded to two decimals.
func meanLikeRatio(videos []*model.VideoRecord) (pct float64, ok bool) {
	var sum float64
	var n int
	for _, v := range videos {
		if v.LikeCount > 0 && v.ViewCount > 0 {
			sum += float64(v.LikeCount) / float64(v.ViewCount)
			n++
		}
	}

	if n == 0 {
		return 0, false
	}

	return math.Round(sum/float64(n)*100*100) / 100, true
}
