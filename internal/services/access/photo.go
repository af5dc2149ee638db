package access

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/Biskuitttt/Suratt/internal/model"
)

// Tier identifies which fallback produced a photo URL
type Tier int

const (
	TierDirectPath    Tier = 1 // stored path already names an image file
	TierDirectory     Tier = 2 // stored path is a directory prefix
	TierRecord        Tier = 3 // referenced PhotoRecord or blob object
	TierMissingRecord Tier = 4 // reference target absent, path from its last segment
	TierConventional  Tier = 5 // path guessed from the canonical name
)

var tierNames = map[Tier]string{
	TierDirectPath:    "direct_path",
	TierDirectory:     "directory",
	TierRecord:        "record",
	TierMissingRecord: "missing_record",
	TierConventional:  "conventional",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Photo is a resolved photo URL and the tier that produced it
type Photo struct {
	URL  string
	Tier Tier
}

// ResolvePhoto picks a displayable photo URL for a resolution. It never
// fails: any lookup error falls through to a conventional path.
func (s *Service) ResolvePhoto(ctx context.Context, res *Resolution) Photo {
	photo := s.resolvePhoto(ctx, res)
	s.metrics.PhotoResolved(photo.Tier.String())
	return photo
}

func (s *Service) resolvePhoto(ctx context.Context, res *Resolution) Photo {
	ref := res.Photo
	switch ref.Kind {
	case model.RefPath:
		if isURL(ref.Path) || s.hasImageExtension(ref.Path) {
			return Photo{URL: ref.Path, Tier: TierDirectPath}
		}
		return Photo{URL: strings.TrimRight(ref.Path, "/") + "/" + s.photoFilename, Tier: TierDirectory}

	case model.RefStorage:
		url, err := s.blobs.ResolveDownloadURL(ctx, ref.Path)
		if err == nil {
			return Photo{URL: url, Tier: TierRecord}
		}
		_ = s.degraded(ctx, "blob", ref.Path, err)

	case model.RefDocument:
		if photo, ok := s.fromRecord(ctx, ref); ok {
			return photo
		}

	case model.RefInvalid:
		_ = s.degraded(ctx, "reference", ref.Raw, model.ErrInvalidReference)
		if segment := model.LastSegment(ref.Raw); segment != "" {
			return Photo{URL: s.conventionalPath(segment), Tier: TierMissingRecord}
		}
	}

	return Photo{URL: s.conventionalPath(res.CanonicalName), Tier: TierConventional}
}

// fromRecord follows a document reference. A missing or unreadable target
// falls back to the reference's last segment.
func (s *Service) fromRecord(ctx context.Context, ref model.PhotoRef) (Photo, bool) {
	record, err := s.repo.Photo(ctx, ref.Document)
	if err != nil {
		if ctx.Err() != nil {
			return Photo{}, false
		}
		_ = s.degraded(ctx, ref.Document.Collection, ref.Document.Key, err)
		return Photo{URL: s.conventionalPath(ref.Document.Key), Tier: TierMissingRecord}, true
	}

	if !record.Usable() {
		return Photo{URL: s.conventionalPath(record.ID), Tier: TierRecord}, true
	}
	if record.URL != "" {
		return Photo{URL: record.URL, Tier: TierRecord}, true
	}
	url, err := s.blobs.ResolveDownloadURL(ctx, record.StoragePath)
	if err != nil {
		_ = s.degraded(ctx, "blob", record.StoragePath, err)
		return Photo{}, false
	}
	return Photo{URL: url, Tier: TierRecord}, true
}

func (s *Service) conventionalPath(name string) string {
	return "/" + s.participantsDir + "/" + name + "/" + s.photoFilename
}

func (s *Service) hasImageExtension(p string) bool {
	_, ok := s.extensions[strings.ToLower(path.Ext(p))]
	return ok
}

func isURL(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isNotPresent(err error) bool {
	return errors.Is(err, model.ErrNotPresent)
}
