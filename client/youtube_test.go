package client

import (
	"errors"
	"fmt"
	"testing"
	"time"

	ytapi "google.golang.org/api/youtube/v3"

	"github.com/andkntr/youtube-comments-extract/model"
)

func TestNewYouTubeDataClientRequiresKey(t *testing.T) {
	_, err := NewYouTubeDataClient("", time.Second)
	if err == nil {
		t.Fatal("expected error for empty API key")
	}

	c, err := NewYouTubeDataClient("test-key", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.timeout <= 0 {
		t.Errorf("expected default timeout, got %v", c.timeout)
	}
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		size     int
		expected []int // chunk lengths
	}{
		{name: "empty", count: 0, size: 50, expected: nil},
		{name: "single partial chunk", count: 10, size: 50, expected: []int{10}},
		{name: "exact chunk", count: 50, size: 50, expected: []int{50}},
		{name: "one over", count: 51, size: 50, expected: []int{50, 1}},
		{name: "several chunks", count: 120, size: 50, expected: []int{50, 50, 20}},
		{name: "zero size", count: 10, size: 0, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.count)
			for i := range ids {
				ids[i] = fmt.Sprintf("id%d", i)
			}

			chunks := chunkIDs(ids, tt.size)
			if len(chunks) != len(tt.expected) {
				t.Fatalf("expected %d chunks, got %d", len(tt.expected), len(chunks))
			}

			var total int
			for i, chunk := range chunks {
				if len(chunk) != tt.expected[i] {
					t.Errorf("chunk %d: expected length %d, got %d", i, tt.expected[i], len(chunk))
				}
				total += len(chunk)
			}
			if total != tt.count {
				t.Errorf("chunks cover %d IDs, expected %d", total, tt.count)
			}

			// Order must be preserved across chunk boundaries.
			if tt.count > tt.size && tt.size > 0 {
				if chunks[1][0] != ids[tt.size] {
					t.Errorf("expected chunk boundary at %q, got %q", ids[tt.size], chunks[1][0])
				}
			}
		})
	}
}

func TestBestThumbnail(t *testing.T) {
	tests := []struct {
		name     string
		details  *ytapi.ThumbnailDetails
		expected string
	}{
		{name: "nil details", details: nil, expected: ""},
		{
			name: "prefers maxres",
			details: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "default.jpg"},
				Maxres:  &ytapi.Thumbnail{Url: "maxres.jpg"},
			},
			expected: "maxres.jpg",
		},
		{
			name: "falls back down the ladder",
			details: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "default.jpg"},
				Medium:  &ytapi.Thumbnail{Url: "medium.jpg"},
			},
			expected: "medium.jpg",
		},
		{name: "no thumbnails", details: &ytapi.ThumbnailDetails{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestThumbnail(tt.details); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUpstreamErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := upstream("channels.list", cause)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatal("expected UpstreamError")
	}
	if ue.Op != "channels.list" {
		t.Errorf("expected op channels.list, got %s", ue.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if errors.Is(err, model.ErrNotFound) {
		t.Error("upstream failure must not look like NotFound")
	}
}
