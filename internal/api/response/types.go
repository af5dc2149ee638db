package response

import (
	"time"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
)

// Identity represents a resolved identity in API responses
type Identity struct {
	Input         string `json:"input"`
	Key           string `json:"key,omitempty"`
	CanonicalName string `json:"canonical_name"`
	DisplayName   string `json:"display_name"`
	PhotoURL      string `json:"photo_url"`
	Memo1         string `json:"memo1,omitempty"`
	Memo2         string `json:"memo2,omitempty"`
	Found         bool   `json:"found"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

// IdentityFromModel converts a model.ResolvedIdentity
func IdentityFromModel(i *model.ResolvedIdentity) Identity {
	return Identity{
		Input:         i.Input,
		Key:           i.Key,
		CanonicalName: i.CanonicalName,
		DisplayName:   i.DisplayName,
		PhotoURL:      i.PhotoURL,
		Memo1:         i.Memo1,
		Memo2:         i.Memo2,
		Found:         i.Found,
		RedirectURL:   i.RedirectURL,
	}
}

// AccessResponse is the response for a successful gate submission
type AccessResponse struct {
	Valid        bool     `json:"valid"`
	Identity     Identity `json:"identity"`
	SessionToken string   `json:"session_token"`
	ExpiresAt    string   `json:"expires_at"`
	Seq          int64    `json:"seq,omitempty"`
}

// AccessResponseFromSession creates an AccessResponse from a session
func AccessResponseFromSession(s *auth.Session, seq int64) AccessResponse {
	return AccessResponse{
		Valid:        true,
		Identity:     IdentityFromModel(&s.Identity),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt.UTC().Format(time.RFC3339),
		Seq:          seq,
	}
}

// PhotoResponse is the response for photo resolution
type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
	Tier     int    `json:"tier"`
	TierName string `json:"tier_name"`
	Found    bool   `json:"found"`
}

// PhotoResponseFrom converts a resolved photo
func PhotoResponseFrom(p access.Photo, found bool) PhotoResponse {
	return PhotoResponse{
		PhotoURL: p.URL,
		Tier:     int(p.Tier),
		TierName: p.Tier.String(),
		Found:    found,
	}
}

// ValidateResponse is the response for access code validation
type ValidateResponse struct {
	Input string `json:"input"`
	Valid bool   `json:"valid"`
}

// CodesResponse lists known access codes by display name only
type CodesResponse struct {
	DisplayNames []string `json:"display_names"`
	Count        int      `json:"count"`
}

// CodesResponseFromModel converts a list of access codes
func CodesResponseFromModel(codes []*model.AccessCode) CodesResponse {
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		name := c.DisplayName
		if name == "" {
			name = c.ID
		}
		names = append(names, name)
	}
	return CodesResponse{DisplayNames: names, Count: len(names)}
}

// GalleryImage represents one gallery entry
type GalleryImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

// GalleryResponse lists the gallery of one access code
type GalleryResponse struct {
	Images []GalleryImage `json:"images"`
}

// GalleryResponseFromModel converts gallery images
func GalleryResponseFromModel(images []model.GalleryImage) GalleryResponse {
	out := make([]GalleryImage, len(images))
	for i, img := range images {
		out[i] = GalleryImage{ID: img.ID, URL: img.URL, Caption: img.Caption, Order: img.Order}
	}
	return GalleryResponse{Images: out}
}

// SessionResponse describes the current visitor session
type SessionResponse struct {
	Identity  Identity `json:"identity"`
	ExpiresAt string   `json:"expires_at"`
}

// SessionResponseFromSession converts a session
func SessionResponseFromSession(s *auth.Session) SessionResponse {
	return SessionResponse{
		Identity:  IdentityFromModel(&s.Identity),
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// DebugResponse is the full resolution trace for one input
type DebugResponse struct {
	Identity   Identity         `json:"identity"`
	Collection string           `json:"collection,omitempty"`
	Aliased    bool             `json:"aliased"`
	PhotoRef   string           `json:"photo_ref_kind"`
	PhotoTier  string           `json:"photo_tier"`
	Attempts   []access.Attempt `json:"attempts"`
}

// DebugResponseFrom combines a resolution with the identity built from it
func DebugResponseFrom(identity *model.ResolvedIdentity, res *access.Resolution) DebugResponse {
	kind := string(res.Photo.Kind)
	if res.Photo.IsAbsent() {
		kind = string(model.RefAbsent)
	}
	attempts := res.Attempts
	if attempts == nil {
		attempts = []access.Attempt{}
	}
	return DebugResponse{
		Identity:   IdentityFromModel(identity),
		Collection: res.Collection,
		Aliased:    res.Aliased,
		PhotoRef:   kind,
		PhotoTier:  res.PhotoTier.String(),
		Attempts:   attempts,
	}
}

// HealthResponse reports service health
type HealthResponse struct {
	Status string `json:"status"`
}
