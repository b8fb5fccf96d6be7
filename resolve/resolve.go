// Package resolve extracts canonical video and channel identifiers from
// arbitrary user-supplied strings: full URLs, short links, handles, or the
// identifiers themselves.
package resolve

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andkntr/youtube-comments-extract/model"
)

var (
	videoIDExact   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	videoIDParam   = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`)
	videoIDShort   = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`)
	channelIDExact = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	channelIDPath  = regexp.MustCompile(`/channel/(UC[A-Za-z0-9_-]{22})`)
	handlePattern  = regexp.MustCompile(`@([A-Za-z0-9._-]+)`)
)

// ChannelSearcher is the best-effort search fallback used when the input is
// a handle or custom URL rather than a channel ID.
type ChannelSearcher interface {
	SearchChannelID(ctx context.Context, query string) (string, error)
}

// Resolver resolves raw user input to canonical identifiers.
type Resolver struct {
	searcher ChannelSearcher
}

// NewResolver creates a resolver. The searcher is only consulted by
// ResolveChannel when no direct pattern matches.
func NewResolver(searcher ChannelSearcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// videoMatcher tries one extraction strategy and reports whether it matched.
type videoMatcher func(input string) (string, bool)

// videoMatchers are tried in order; the first match wins and no further
// strategies are attempted.
var videoMatchers = []videoMatcher{
	matchVideoParam,
	matchVideoShortLink,
	matchVideoExact,
}

// ResolveVideo extracts an 11-character video identifier from the input.
// It never touches the network. Returns model.ErrInvalidInput for empty
// input and model.ErrNotFound when no strategy matches.
func (r *Resolver) ResolveVideo(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty video input: %w", model.ErrInvalidInput)
	}

	for _, match := range videoMatchers {
		if id, ok := match(input); ok {
			return id, nil
		}
	}

	log.Debug().Str("input", input).Msg("No video ID pattern matched")
	return "", fmt.Errorf("video from %q: %w", input, model.ErrNotFound)
}

// ResolveChannel resolves the input to a channel identifier. Direct shape
// checks run first; handle and free-text inputs fall through to the search
// API, which is best-effort: the top result is accepted unconditionally,
// and zero results map to model.ErrNotFound.
func (r *Resolver) ResolveChannel(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty channel input: %w", model.ErrInvalidInput)
	}

	if channelIDExact.MatchString(input) {
		return input, nil
	}

	if m := channelIDPath.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}

	if m := handlePattern.FindStringSubmatch(input); m != nil {
		log.Debug().Str("handle", m[1]).Msg("Resolving channel handle via search")
		return r.search(ctx, m[1])
	}

	segment := lastPathSegment(input)
	if segment == "" {
		return "", fmt.Errorf("channel from %q: %w", input, model.ErrNotFound)
	}

	log.Debug().Str("query", segment).Msg("Resolving channel via free-text search")
	return r.search(ctx, segment)
}

func (r *Resolver) search(ctx context.Context, query string) (string, error) {
	if r.searcher == nil {
		return "", fmt.Errorf("channel search %q: %w", query, model.ErrNotFound)
	}
	return r.searcher.SearchChannelID(ctx, query)
}

func matchVideoParam(input string) (string, bool) {
	if m := videoIDParam.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	return "", false
}

func matchVideoShortLink(input string) (string, bool) {
	if m := videoIDShort.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	return "", false
}

func matchVideoExact(input string) (string, bool) {
	if videoIDExact.MatchString(input) {
		return input, true
	}
	return "", false
}

// lastPathSegment returns the last non-empty path segment of the input,
// treating inputs without a scheme as bare paths.
func lastPathSegment(input string) string {
	path := input
	if u, err := url.Parse(input); err == nil && u.Path != "" {
		path = u.Path
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" {
			return s
		}
	}
	return ""
}
