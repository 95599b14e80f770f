package adapter

import (
	"bytes"
	"encoding/csv"
	"io"

	"content_catalog/internal/domain"
)

// CSVAdapter projects tabular exports into content items. The first row is
// the header row; each normalized attribute is resolved to a column index
// once, by looking up its mapped header name. An attribute whose header is
// unmapped or absent is omitted from every record.
//
// Malformed input never fails the sync: unparseable payloads degrade to an
// empty row set, and rows shorter than a resolved index yield an empty cell.
type CSVAdapter struct{}

func NewCSV() *CSVAdapter {
	return &CSVAdapter{}
}

func (a *CSVAdapter) Type() domain.SourceType {
	return domain.SourceTypeCSV
}

func (a *CSVAdapter) ParseAndProject(payload []byte, mappings *domain.FieldMappings) ([]domain.ContentItem, error) {
	rows := readRows(payload)
	if len(rows) < 2 {
		return nil, nil
	}

	var headers map[string]string
	defaultType := domain.TypeOther
	if mappings != nil {
		headers = mappings.Headers
		if mappings.DefaultContentItemType != "" {
			defaultType = mappings.DefaultContentItemType
		}
	}
	idx := resolveIndexes(rows[0], headers)

	urlIdx, hasURL := idx[domain.AttrContentURL]
	if !hasURL {
		return nil, nil
	}
	typeIdx, hasType := idx[domain.AttrType]

	items := make([]domain.ContentItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		url := cell(row, urlIdx)
		if url == "" {
			continue
		}

		item := domain.ContentItem{
			ContentURL: url,
			Type:       defaultType,
		}
		if hasType {
			if v := cell(row, typeIdx); v != "" {
				// Kept raw; an unknown value fails record validation later.
				item.Type = domain.ContentItemType(v)
			}
		}
		if i, ok := idx[domain.AttrName]; ok {
			item.Name = cell(row, i)
		}
		if i, ok := idx[domain.AttrShortDescription]; ok {
			item.ShortDescription = cell(row, i)
		}
		if i, ok := idx[domain.AttrThumbnailURL]; ok {
			item.ThumbnailURL = cell(row, i)
		}
		items = append(items, item)
	}

	return items, nil
}

// readRows collects rows until EOF or the first parse error. Whatever was
// readable before the error is kept; the rest of the payload is dropped.
func readRows(payload []byte) [][]string {
	r := csv.NewReader(bytes.NewReader(payload))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err != nil {
			if err != io.EOF {
				return rows
			}
			break
		}
		rows = append(rows, row)
	}
	return rows
}

// resolveIndexes computes, once per sync, the column index of every mapped
// attribute whose header name appears in the header row.
func resolveIndexes(headerRow []string, headers map[string]string) map[string]int {
	idx := make(map[string]int, len(headers))
	for attr, header := range headers {
		if header == "" {
			continue
		}
		for i, h := range headerRow {
			if h == header {
				idx[attr] = i
				break
			}
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
