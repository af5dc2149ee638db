package model

import (
	"path"
	"strings"
)

// Collection names in the document store
const (
	CollectionAccessCodes  = "accessCodes"
	CollectionParticipants = "participants"
	CollectionPhotos       = "photos"
	collectionImagesPrefix = "images"
)

// ImagesCollection returns the gallery sub-collection name for a key
func ImagesCollection(key string) string {
	return collectionImagesPrefix + "/" + key
}

// Document is a raw keyed document as held by the document store
type Document struct {
	Collection string
	Key        string
	Fields     map[string]any
}

// String returns a field as a string, or "" if missing or not a string
func (d *Document) String(field string) string {
	if d == nil || d.Fields == nil {
		return ""
	}
	s, _ := d.Fields[field].(string)
	return s
}

// FirstString returns the first non-empty string among the given fields
func (d *Document) FirstString(fields ...string) string {
	for _, f := range fields {
		if s := d.String(f); s != "" {
			return s
		}
	}
	return ""
}

// Bool returns a field as a bool, defaulting when missing
func (d *Document) Bool(field string, def bool) bool {
	if d == nil || d.Fields == nil {
		return def
	}
	b, ok := d.Fields[field].(bool)
	if !ok {
		return def
	}
	return b
}

// Number returns a numeric field as float64. JSON round-trips turn every
// number into float64, memory storage may still hold ints.
func (d *Document) Number(field string) (float64, bool) {
	if d == nil || d.Fields == nil {
		return 0, false
	}
	switch v := d.Fields[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

// DocumentPath identifies a document by collection and key, as used in
// reference fields ("photos/kevin")
type DocumentPath struct {
	Collection string
	Key        string
}

// String renders the path in "<collection>/<key>" form
func (p DocumentPath) String() string {
	return p.Collection + "/" + p.Key
}

// ParseDocumentPath parses "<collection>/<key>", tolerating a leading slash.
// Anything other than exactly two non-empty segments is ErrInvalidReference.
func ParseDocumentPath(raw string) (DocumentPath, error) {
	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return DocumentPath{}, ErrInvalidReference
	}
	return DocumentPath{Collection: parts[0], Key: parts[1]}, nil
}

// LastSegment returns the final "/"-separated segment of a raw reference
func LastSegment(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}
