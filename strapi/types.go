package strapi

import (
	"bytes"
	"encoding/json"
)

// Response is the {data, meta} envelope returned by the content API.
type Response[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries response metadata.
type Meta struct {
	Pagination *PageMeta `json:"pagination,omitempty"`
}

// PageMeta describes the page a collection response belongs to.
type PageMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
	// Start and Limit are set instead of Page/PageSize for offset pagination.
	Start int `json:"start,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// HasMorePages checks if there are more pages to fetch
func (m *PageMeta) HasMorePages() bool {
	return m.Page < m.PageCount
}

// Entity is a single record. It accepts both the flat record shape and the
// older {"id", "attributes": {...}} shape.
type Entity[T any] struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Attributes T      `json:"attributes"`
}

// UnmarshalJSON decodes flat and attribute-wrapped records alike.
func (e *Entity[T]) UnmarshalJSON(b []byte) error {
	var head struct {
		ID         int             `json:"id"`
		DocumentID string          `json:"documentId"`
		Attributes json.RawMessage `json:"attributes"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	e.ID = head.ID
	e.DocumentID = head.DocumentID

	src := b
	if len(head.Attributes) > 0 && !bytes.Equal(head.Attributes, []byte("null")) {
		src = head.Attributes
	}
	return json.Unmarshal(src, &e.Attributes)
}

// ErrorBody is the error envelope sent with non-2xx responses.
type ErrorBody struct {
	Status  int            `json:"status"`
	Name    string         `json:"name"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// parseErrorBody accepts both {"error": {...}} and a bare error object.
func parseErrorBody(body []byte) (*ErrorBody, bool) {
	var wrapped struct {
		Error *ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		return wrapped.Error, true
	}

	var flat ErrorBody
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		return &flat, true
	}
	return nil, false
}

// Media is an uploaded file as embedded in records.
type Media struct {
	ID              int    `json:"id"`
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	Mime            string `json:"mime,omitempty"`
}

// MediaRelation is a single media field, flat or wrapped in {"data": ...}.
type MediaRelation struct {
	Media *Media
}

// UnmarshalJSON decodes both {"url": ...} and {"data": {"attributes": {...}}}.
func (m *MediaRelation) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		m.Media = nil
		return nil
	}
	var wrapped struct {
		Data *Entity[Media] `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && wrapped.Data != nil {
		media := wrapped.Data.Attributes
		media.ID = wrapped.Data.ID
		m.Media = &media
		return nil
	}
	var media Media
	if err := json.Unmarshal(b, &media); err != nil {
		return err
	}
	if media.URL == "" {
		m.Media = nil
		return nil
	}
	m.Media = &media
	return nil
}

// MarshalJSON writes the flat shape.
func (m MediaRelation) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Media)
}
