package model

import "time"

// PhotoRefKind tags which shape a photo reference had when it was read
type PhotoRefKind string

const (
	RefAbsent   PhotoRefKind = "absent"   // no reference stored
	RefPath     PhotoRefKind = "path"     // plain string: a file path or directory prefix
	RefStorage  PhotoRefKind = "storage"  // gs:// object in the blob store
	RefDocument PhotoRefKind = "document" // points at a PhotoRecord
	RefInvalid  PhotoRefKind = "invalid"  // reference object with a malformed path
)

// PhotoRef is a normalized photo reference. Exactly one of Path or Document
// is meaningful, depending on Kind. Raw keeps the stored value for fallbacks.
type PhotoRef struct {
	Kind     PhotoRefKind
	Path     string       // RefPath and RefStorage
	Document DocumentPath // RefDocument
	Raw      string
}

// IsAbsent reports whether no usable reference was stored
func (r PhotoRef) IsAbsent() bool {
	return r.Kind == "" || r.Kind == RefAbsent
}

// AccessCode is a visitor-facing secret or name that unlocks personal content
type AccessCode struct {
	ID          string
	DisplayName string
	Memo1       string
	Memo2       string
	Photo       PhotoRef
	Active      bool
	CreatedAt   time.Time
}

// Participant is keyed by canonical name and acts as the alternate lookup
// path when the access code collection misses
type Participant struct {
	ID          string
	DisplayName string
	Photo       PhotoRef
	Active      bool
	CreatedAt   time.Time
}

// PhotoRecord describes where a photo lives
type PhotoRecord struct {
	ID          string
	URL         string
	StoragePath string
}

// Usable reports whether the record can produce a URL on its own
func (p *PhotoRecord) Usable() bool {
	return p != nil && (p.URL != "" || p.StoragePath != "")
}

// GalleryImage is one entry of a code's image gallery
type GalleryImage struct {
	ID      string
	URL     string
	Caption string
	Order   int
}

// ResolvedIdentity is the outcome of resolving visitor input. Derived, never persisted.
type ResolvedIdentity struct {
	Input         string
	Key           string // matched document key, empty when guessed
	CanonicalName string
	DisplayName   string
	PhotoURL      string
	Memo1         string
	Memo2         string
	Found         bool
	RedirectURL   string
}
