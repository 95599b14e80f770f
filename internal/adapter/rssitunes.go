package adapter

import (
	"bytes"

	"github.com/mmcdole/gofeed"

	"content_catalog/internal/domain"
)

// FeedConfig is the explicit parsing configuration for the feed adapter.
// It is fixed at construction and never mutated.
type FeedConfig struct {
	// ItemType is assigned to every projected record. The rss2-itunes
	// convention is audio, the zero-value default.
	ItemType domain.ContentItemType
}

// RSSITunesAdapter projects iTunes-style podcast feeds into content items.
// The mapping is fixed by the feed convention: title becomes the name, the
// enclosure URL the content URL, the iTunes subtitle the short description
// and the item image the thumbnail. Entries without an enclosure URL are
// skipped; they cannot become content items.
//
// Parsing is strict: a payload that is not a well-formed feed fails the
// whole sync with a parse error.
type RSSITunesAdapter struct {
	cfg FeedConfig
}

func NewRSSITunes(cfg FeedConfig) *RSSITunesAdapter {
	if cfg.ItemType == "" {
		cfg.ItemType = domain.TypeAudio
	}
	return &RSSITunesAdapter{cfg: cfg}
}

func (a *RSSITunesAdapter) Type() domain.SourceType {
	return domain.SourceTypeRSSITunes
}

func (a *RSSITunesAdapter) ParseAndProject(payload []byte, _ *domain.FieldMappings) ([]domain.ContentItem, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.ParseError{SourceType: domain.SourceTypeRSSITunes, Err: err}
	}

	items := make([]domain.ContentItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		url := enclosureURL(entry)
		if url == "" {
			continue
		}

		item := domain.ContentItem{
			ContentURL: url,
			Type:       a.cfg.ItemType,
			Name:       entry.Title,
		}
		if entry.ITunesExt != nil {
			item.ShortDescription = entry.ITunesExt.Subtitle
			item.ThumbnailURL = entry.ITunesExt.Image
		}
		if item.ThumbnailURL == "" && entry.Image != nil {
			item.ThumbnailURL = entry.Image.URL
		}
		items = append(items, item)
	}

	return items, nil
}

func enclosureURL(entry *gofeed.Item) string {
	for _, enc := range entry.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
