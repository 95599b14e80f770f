package domain

import "time"

// ContentItemType classifies the medium of a normalized content item.
type ContentItemType string

const (
	TypeArticle ContentItemType = "article"
	TypeVideo   ContentItemType = "video"
	TypeAudio   ContentItemType = "audio"
	TypeOther   ContentItemType = "other"
)

// ParseContentItemType reports whether s names a known content item type.
func ParseContentItemType(s string) (ContentItemType, bool) {
	switch t := ContentItemType(s); t {
	case TypeArticle, TypeVideo, TypeAudio, TypeOther:
		return t, true
	}
	return "", false
}

// ContentItem is the normalized, storage-ready unit of content. Whatever raw
// format a source delivers, the adapters converge on this shape.
type ContentItem struct {
	ID               int64           `json:"id" db:"id"`
	PublisherID      string          `json:"publisherId" db:"publisher_id"`
	SourceID         string          `json:"sourceId" db:"source_id"`
	ContentURL       string          `json:"contentUrl" db:"content_url"`
	Type             ContentItemType `json:"type" db:"type"`
	Name             string          `json:"name,omitempty" db:"name"`
	ShortDescription string          `json:"shortDescription,omitempty" db:"short_description"`
	ThumbnailURL     string          `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}
