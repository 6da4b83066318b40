// Package embed derives display hints from a bookmark's URL shape.
// The derivation is pure and never persisted: when the declared bookmark type
// does not match the URL's host, no hint is produced and no error is raised.
package embed

import (
	"regexp"
	"strings"

	"github.com/patric-chuzhbe/daybook/internal/models"
)

var (
	youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	tweetIDPattern   = regexp.MustCompile(`(?:twitter\.com|x\.com)/\w+/status/(\d+)`)
)

// Embed is the display hint attached to a bookmark listing entry.
// At most one of the fields is set.
type Embed struct {
	YoutubeVideoID string `json:"youtube_video_id,omitempty"`
	TweetID        string `json:"tweet_id,omitempty"`
	NotionPage     bool   `json:"notion_page,omitempty"`
}

// YoutubeVideoID extracts the 11-character video identifier from a
// youtube.com watch/embed/shorts URL or a youtu.be shortlink.
func YoutubeVideoID(url string) (string, bool) {
	match := youtubeIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// TweetID extracts the numeric status identifier from a
// twitter.com or x.com `/<user>/status/<digits>` URL.
func TweetID(url string) (string, bool) {
	match := tweetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// IsNotionPage reports whether the URL points at a Notion-hosted page.
func IsNotionPage(url string) bool {
	return strings.Contains(url, "notion.so") || strings.Contains(url, "notion.site")
}

// Classify derives the embed hint for a bookmark of the declared type.
// It returns nil when the URL does not match the type's expected host shape.
func Classify(bookmarkType models.BookmarkType, url string) *Embed {
	switch bookmarkType {
	case models.BookmarkTypeYoutube:
		if id, ok := YoutubeVideoID(url); ok {
			return &Embed{YoutubeVideoID: id}
		}

	case models.BookmarkTypeTweet:
		if id, ok := TweetID(url); ok {
			return &Embed{TweetID: id}
		}

	case models.BookmarkTypeNotion:
		if IsNotionPage(url) {
			return &Embed{NotionPage: true}
		}
	}

	return nil
}
