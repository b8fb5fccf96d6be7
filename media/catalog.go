package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/andkntr/youtube-comments-extract/model"
)

// Catalog probes a video's available encodings.
type Catalog struct {
	runner Runner
}

// NewCatalog creates a catalog backed by the given extractor runner.
func NewCatalog(runner Runner) *Catalog {
	return &Catalog{runner: runner}
}

// ytdlpProbe is yt-dlp's -J output, reduced to the fields the catalog reads.
type ytdlpProbe struct {
	Title   string        `json:"title"`
	Formats []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID       string `json:"format_id"`
	Vcodec         string `json:"vcodec"`
	Acodec         string `json:"acodec"`
	Resolution     string `json:"resolution"`
	FormatNote     string `json:"format_note"`
	Filesize       int64  `json:"filesize"`
	FilesizeApprox int64  `json:"filesize_approx"`
}

// ListFormats probes the video for its available encodings and classifies
// each by media-stream composition. Encodings with neither a video nor an
// audio codec are dropped. Audio+video entries are surfaced first; ordering
// within each group preserves the source order, since it reflects the
// source's quality tiers.
func (c *Catalog) ListFormats(ctx context.Context, videoURL string) ([]model.FormatDescriptor, error) {
	if videoURL == "" {
		return nil, fmt.Errorf("empty video URL: %w", model.ErrInvalidInput)
	}

	log.Info().Str("url", videoURL).Msg("Probing available formats")

	stdout, _, err := c.runner.Run(ctx, "-J", "--no-warnings", videoURL)
	if err != nil {
		return nil, fmt.Errorf("probe formats: %w", err)
	}

	var probe ytdlpProbe
	if err := json.Unmarshal(stdout, &probe); err != nil {
		return nil, fmt.Errorf("parse format probe: %w", err)
	}

	var combined, rest []model.FormatDescriptor
	for _, f := range probe.Formats {
		kind, ok := classify(f)
		if !ok {
			continue
		}

		desc := model.FormatDescriptor{
			Kind:       kind,
			Resolution: resolutionLabel(f),
			SizeMB:     sizeMB(f),
			Code:       f.FormatID,
		}

		if kind == model.KindAudioVideo {
			combined = append(combined, desc)
		} else {
			rest = append(rest, desc)
		}
	}

	formats := append(combined, rest...)

	log.Info().
		Str("url", videoURL).
		Int("format_count", len(formats)).
		Int("combined_count", len(combined)).
		Msg("Format probe complete")

	return formats, nil
}

// classify buckets an encoding by codec presence. The second return value
// is false when both codecs are absent or unknown.
func classify(f ytdlpFormat) (model.StreamKind, bool) {
	hasVideo := f.Vcodec != "" && f.Vcodec != "none"
	hasAudio := f.Acodec != "" && f.Acodec != "none"

	switch {
	case hasVideo && hasAudio:
		return model.KindAudioVideo, true
	case hasVideo:
		return model.KindVideoOnly, true
	case hasAudio:
		return model.KindAudioOnly, true
	default:
		return "", false
	}
}

func resolutionLabel(f ytdlpFormat) string {
	if f.Resolution != "" {
		return f.Resolution
	}
	return f.FormatNote
}

// sizeMB converts the reported size from bytes to megabytes, rounded to two
// decimals. Returns nil when the source reports no size.
func sizeMB(f ytdlpFormat) *float64 {
	size := f.Filesize
	if size == 0 {
		size = f.FilesizeApprox
	}
	if size == 0 {
		return nil
	}

	mb := math.Round(float64(size)/1024/1024*100) / 100
	return &mb
}
