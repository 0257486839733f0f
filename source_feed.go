package mdtodocx

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
)

// FeedSource handles RSS and Atom feeds: the feed becomes a titled document
// with one section per item.
type FeedSource struct{}

// NewFeedSource creates a new FeedSource.
func NewFeedSource() *FeedSource {
	return &FeedSource{}
}

func (s *FeedSource) Accepts(info StreamInfo) bool {
	switch info.Extension {
	case ".rss", ".atom":
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	switch {
	case strings.HasPrefix(mime, "application/rss"),
		strings.HasPrefix(mime, "application/atom"):
		return true
	}
	// For .xml and generic XML mime types, we'll try to parse
	if info.Extension == ".xml" ||
		strings.HasPrefix(mime, "text/xml") ||
		strings.HasPrefix(mime, "application/xml") {
		return true
	}
	return false
}

func (s *FeedSource) Markdown(reader io.ReadSeeker, info StreamInfo) (*SourceResult, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var b strings.Builder

	// Feed title as H1
	if feed.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", feed.Title)
	}
	if feed.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", feed.Description)
	}

	for _, item := range feed.Items {
		// Item title as H2
		if item.Title != "" {
			fmt.Fprintf(&b, "## %s\n\n", item.Title)
		}

		// Publication date
		if item.Published != "" {
			fmt.Fprintf(&b, "Published: %s\n\n", item.Published)
		} else if item.Updated != "" {
			fmt.Fprintf(&b, "Updated: %s\n\n", item.Updated)
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}
		if content != "" {
			// Feed item bodies are usually HTML; reduce them too
			if strings.Contains(content, "<") && strings.Contains(content, ">") {
				if md, err := htmlToMarkdown(content); err == nil {
					content = md
				}
			}
			b.WriteString(content)
			b.WriteString("\n\n")
		}
	}

	return &SourceResult{
		Markdown: b.String(),
		Title:    feed.Title,
	}, nil
}
