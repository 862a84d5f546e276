package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is a content document owned by the backend (about us, privacy
// policy, terms of service). The raw JSON is kept byte-for-byte so it can
// be passed through unmodified; accessors only read from it.
type Document json.RawMessage

type (
	AboutUsData        = Document
	PrivacyPolicyData  = Document
	TermsOfServiceData = Document
)

// Candidate keys for the fields the pages display
var (
	titleKeys   = []string{"titre", "title", "nom"}
	contentKeys = []string{"contenu", "content", "texte", "description"}
	updatedKeys = []string{"date_mise_a_jour", "updated_at", "date_modification", "date"}
)

// MarshalJSON returns the raw document.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// RawJSON returns the document exactly as the backend sent it. json.Marshal
// would compact it and escape its HTML.
func (d Document) RawJSON() []byte {
	if len(d) == 0 {
		return []byte("null")
	}
	return d
}

// UnmarshalJSON keeps a copy of the raw bytes.
func (d *Document) UnmarshalJSON(data []byte) error {
	if d == nil {
		return fmt.Errorf("models.Document: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[0:0], data...)
	return nil
}

// Equal reports byte equality of two documents.
func (d Document) Equal(other Document) bool {
	return bytes.Equal(d, other)
}

// IsEmpty reports whether the document carries no data.
func (d Document) IsEmpty() bool {
	trimmed := bytes.TrimSpace(d)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

// Title returns the document title, or "" when absent.
func (d Document) Title() string {
	return d.Field(titleKeys...)
}

// Content returns the document body (possibly HTML), or "" when absent.
func (d Document) Content() string {
	return d.Field(contentKeys...)
}

// UpdatedAt returns the last-modified date as sent by the backend.
func (d Document) UpdatedAt() string {
	return d.Field(updatedKeys...)
}

// Field returns the first non-blank string value among keys. Documents that
// are JSON arrays are read from their first element.
func (d Document) Field(keys ...string) string {
	obj := d.object()
	if obj == nil {
		return ""
	}
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Sections returns titled sub-sections when the backend sends them as a
// "sections" array of objects.
func (d Document) Sections() []DocumentSection {
	obj := d.object()
	if obj == nil {
		return nil
	}
	raw, ok := obj["sections"]
	if !ok {
		return nil
	}
	var items []Document
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	var sections []DocumentSection
	for _, item := range items {
		s := DocumentSection{Title: item.Title(), Content: item.Content()}
		if s.Title == "" && s.Content == "" {
			continue
		}
		sections = append(sections, s)
	}
	return sections
}

// DocumentSection is a titled block of a document
type DocumentSection struct {
	Title   string
	Content string
}

func (d Document) object() map[string]json.RawMessage {
	trimmed := bytes.TrimSpace(d)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil || len(items) == 0 {
			return nil
		}
		trimmed = items[0]
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil
	}
	return obj
}
