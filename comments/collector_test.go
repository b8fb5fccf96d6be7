package comments

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andkntr/youtube-comments-extract/model"
)

// mockLister serves a fixed sequence of thread pages
type mockLister struct {
	pages     []*model.ThreadPage
	failAt    int // page index that returns an error, -1 for none
	callCount int
	tokens    []string
}

func (m *mockLister) ListCommentThreads(ctx context.Context, videoID, pageToken string) (*model.ThreadPage, error) {
	m.tokens = append(m.tokens, pageToken)
	idx := m.callCount
	m.callCount++

	if m.failAt >= 0 && idx == m.failAt {
		return nil, errors.New("upstream commentThreads.list: connection reset")
	}
	if idx >= len(m.pages) {
		return &model.ThreadPage{}, nil
	}
	return m.pages[idx], nil
}

func thread(author string, replyAuthors ...string) model.CommentThread {
	t := model.CommentThread{
		TopLevel: model.CommentRecord{Author: author, Text: "comment by " + author},
	}
	for _, r := range replyAuthors {
		t.Replies = append(t.Replies, model.CommentRecord{Author: r, Text: "reply by " + r})
	}
	return t
}

func TestCollectFlattensThreadsWithReplies(t *testing.T) {
	lister := &mockLister{
		failAt: -1,
		pages: []*model.ThreadPage{
			{
				Threads: []model.CommentThread{
					thread("alice", "bob", "carol"),
					thread("dave"),
				},
			},
		},
	}

	collector := NewCollector(lister)
	records, err := collector.Collect(context.Background(), "dQw4w9WgXcQ", 10)
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "alice", records[0].Author)
	assert.Empty(t, records[0].ReplyTo)
	assert.Equal(t, "bob", records[1].Author)
	assert.Equal(t, "alice", records[1].ReplyTo)
	assert.Equal(t, "carol", records[2].Author)
	assert.Equal(t, "alice", records[2].ReplyTo)
	assert.Equal(t, "dave", records[3].Author)
	assert.Empty(t, records[3].ReplyTo)
}

func TestCollectEveryReplyNamesAPriorTopLevelAuthor(t *testing.T) {
	lister := &mockLister{
		failAt: -1,
		pages: []*model.ThreadPage{
			{
				Threads:       []model.CommentThread{thread("a", "r1"), thread("b", "r2", "r3")},
				NextPageToken: "page2",
			},
			{
				Threads: []model.CommentThread{thread("c", "r4")},
			},
		},
	}

	collector := NewCollector(lister)
	records, err := collector.Collect(context.Background(), "dQw4w9WgXcQ", 10)
	require.NoError(t, err)

	seenTopLevel := map[string]bool{}
	for _, r := range records {
		if r.ReplyTo == "" {
			seenTopLevel[r.Author] = true
			continue
		}
		assert.True(t, seenTopLevel[r.ReplyTo],
			"reply by %s references %s before its top-level comment", r.Author, r.ReplyTo)
	}
}

func TestCollectFollowsPageTokens(t *testing.T) {
	lister := &mockLister{
		failAt: -1,
		pages: []*model.ThreadPage{
			{Threads: []model.CommentThread{thread("a")}, NextPageToken: "t1"},
			{Threads: []model.CommentThread{thread("b")}, NextPageToken: "t2"},
			{Threads: []model.CommentThread{thread("c")}},
		},
	}

	collector := NewCollector(lister)
	records, err := collector.Collect(context.Background(), "dQw4w9WgXcQ", 10)
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, []string{"", "t1", "t2"}, lister.tokens)
}

func TestCollectStopsAtMaxPages(t *testing.T) {
	// Every page advertises a next page; the counter must stop the loop.
	pages := make([]*model.ThreadPage, 20)
	for i := range pages {
		pages[i] = &model.ThreadPage{
			Threads:       []model.CommentThread{thread(fmt.Sprintf("author%d", i))},
			NextPageToken: fmt.Sprintf("t%d", i+1),
		}
	}
	lister := &mockLister{failAt: -1, pages: pages}

	collector := NewCollector(lister)
	records, err := collector.Collect(context.Background(), "dQw4w9WgXcQ", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, lister.callCount)
	assert.Len(t, records, 3)
}

func TestCollectDefaultMaxPages(t *testing.T) {
	pages := make([]*model.ThreadPage, 20)
	for i := range pages {
		pages[i] = &model.ThreadPage{
			Threads:       []model.CommentThread{thread(fmt.Sprintf("author%d", i))},
			NextPageToken: fmt.Sprintf("t%d", i+1),
		}
	}
	lister := &mockLister{failAt: -1, pages: pages}

	collector := NewCollector(lister)
	_, err := collector.Collect(context.Background(), "dQw4w9WgXcQ", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxPages, lister.callCount)
}

func TestCollectFetchErrorDiscardsPartialResults(t *testing.T) {
	lister := &mockLister{
		failAt: 1,
		pages: []*model.ThreadPage{
			{Threads: []model.CommentThread{thread("a")}, NextPageToken: "t1"},
			{Threads: []model.CommentThread{thread("b")}},
		},
	}

	collector := NewCollector(lister)
	records, err := collector.Collect(context.Background(), "dQw4w9WgXcQ", 10)
	require.Error(t, err)
	assert.Nil(t, records)
}

func TestCollectEmptyVideoID(t *testing.T) {
	collector := NewCollector(&mockLister{failAt: -1})
	_, err := collector.Collect(context.Background(), "", 10)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

// mockDetailer implements VideoDetailer
type mockDetailer struct {
	channel string
	title   string
	err     error
}

func (m *mockDetailer) GetVideoDetails(ctx context.Context, videoID string) (string, string, error) {
	return m.channel, m.title, m.err
}

func TestVideoDetailsFallback(t *testing.T) {
	channel, title := VideoDetails(context.Background(), &mockDetailer{channel: "Ch", title: "Ti"}, "dQw4w9WgXcQ")
	assert.Equal(t, "Ch", channel)
	assert.Equal(t, "Ti", title)

	channel, title = VideoDetails(context.Background(), &mockDetailer{err: model.ErrNotFound}, "dQw4w9WgXcQ")
	assert.Equal(t, "UnknownChannel", channel)
	assert.Equal(t, "UnknownTitle", title)
}
