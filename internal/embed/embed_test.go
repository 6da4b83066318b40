package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/daybook/internal/models"
)

func TestYoutubeVideoID(t *testing.T) {
	type tTestCase struct {
		name       string
		url        string
		expectedID string
		expectedOk bool
	}
	testCases := []tTestCase{
		{
			name:       "watch_url",
			url:        "https://youtube.com/watch?v=dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
			expectedOk: true,
		},
		{
			name:       "embed_url",
			url:        "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
			expectedOk: true,
		},
		{
			name:       "shorts_url",
			url:        "https://youtube.com/shorts/abc-DEF_123",
			expectedID: "abc-DEF_123",
			expectedOk: true,
		},
		{
			name:       "shortlink",
			url:        "https://youtu.be/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
			expectedOk: true,
		},
		{
			name:       "unrelated_host",
			url:        "https://example.com/watch?v=dQw4w9WgXcQ",
			expectedOk: false,
		},
		{
			name:       "too_short_id",
			url:        "https://youtube.com/watch?v=short",
			expectedOk: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			id, ok := YoutubeVideoID(testCase.url)
			require.Equal(t, testCase.expectedOk, ok)
			if testCase.expectedOk {
				assert.Equal(t, testCase.expectedID, id)
			}
		})
	}
}

func TestTweetID(t *testing.T) {
	type tTestCase struct {
		name       string
		url        string
		expectedID string
		expectedOk bool
	}
	testCases := []tTestCase{
		{
			name:       "x_host",
			url:        "https://x.com/user/status/123456789",
			expectedID: "123456789",
			expectedOk: true,
		},
		{
			name:       "twitter_host",
			url:        "https://twitter.com/someone/status/42",
			expectedID: "42",
			expectedOk: true,
		},
		{
			name:       "no_status_segment",
			url:        "https://x.com/user/likes",
			expectedOk: false,
		},
		{
			name:       "unrelated_host",
			url:        "https://example.com/user/status/42",
			expectedOk: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			id, ok := TweetID(testCase.url)
			require.Equal(t, testCase.expectedOk, ok)
			if testCase.expectedOk {
				assert.Equal(t, testCase.expectedID, id)
			}
		})
	}
}

func TestIsNotionPage(t *testing.T) {
	assert.True(t, IsNotionPage("https://notion.so/abc123"))
	assert.True(t, IsNotionPage("https://my-team.notion.site/page"))
	assert.False(t, IsNotionPage("https://example.com"))
}

func TestClassify(t *testing.T) {
	type tTestCase struct {
		name         string
		bookmarkType models.BookmarkType
		url          string
		expected     *Embed
	}
	testCases := []tTestCase{
		{
			name:         "youtube",
			bookmarkType: models.BookmarkTypeYoutube,
			url:          "https://youtube.com/watch?v=dQw4w9WgXcQ",
			expected:     &Embed{YoutubeVideoID: "dQw4w9WgXcQ"},
		},
		{
			name:         "tweet",
			bookmarkType: models.BookmarkTypeTweet,
			url:          "https://x.com/user/status/123456789",
			expected:     &Embed{TweetID: "123456789"},
		},
		{
			name:         "notion",
			bookmarkType: models.BookmarkTypeNotion,
			url:          "https://notion.so/abc123",
			expected:     &Embed{NotionPage: true},
		},
		{
			name:         "generic_never_embeds",
			bookmarkType: models.BookmarkTypeGeneric,
			url:          "https://example.com",
			expected:     nil,
		},
		{
			name:         "type_host_mismatch",
			bookmarkType: models.BookmarkTypeYoutube,
			url:          "https://x.com/user/status/123456789",
			expected:     nil,
		},
		{
			name:         "pdf_has_no_embed",
			bookmarkType: models.BookmarkTypePDF,
			url:          "https://example.com/paper.pdf",
			expected:     nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Classify(testCase.bookmarkType, testCase.url))
		})
	}
}
