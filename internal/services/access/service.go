// Package access resolves visitor-entered names and codes to identities and
// profile photos. Lookups tolerate inconsistent historical data: every store
// failure degrades to the next fallback instead of surfacing, so resolution
// always produces a photo URL even when nothing is found.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Biskuitttt/Suratt/internal/blobstore"
	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/records"
	"github.com/Biskuitttt/Suratt/internal/services/naming"
)

// Config holds resolver conventions and gating policy
type Config struct {
	// ParticipantsDir is the directory conventional photo paths live under
	ParticipantsDir string
	// PhotoFilename is appended to directory prefixes and guessed paths
	PhotoFilename string
	// ImageExtensions marks a path as a complete file path, matched case-insensitively
	ImageExtensions []string
	// AllowGuessedNames lets names known only to the alias table through the gate
	AllowGuessedNames bool
	// Redirects maps lower-cased input to a page the visitor is sent to
	Redirects map[string]string
}

// DefaultConfig returns default resolver configuration
func DefaultConfig() Config {
	return Config{
		ParticipantsDir: "Peserta",
		PhotoFilename:   "Photo1.jpg",
		ImageExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"},
	}
}

// Service resolves access codes over the document and blob stores
type Service struct {
	repo    *records.Repository
	blobs   blobstore.Resolver
	aliases *naming.AliasTable
	metrics Metrics
	logger  *slog.Logger

	participantsDir string
	photoFilename   string
	extensions      map[string]struct{}
	allowGuessed    bool
	redirects       map[string]string
}

// New creates a new access Service. A nil metrics sink is replaced by a no-op.
func New(
	repo *records.Repository,
	blobs blobstore.Resolver,
	aliases *naming.AliasTable,
	metrics Metrics,
	logger *slog.Logger,
	cfg Config,
) *Service {
	defaults := DefaultConfig()
	if cfg.ParticipantsDir == "" {
		cfg.ParticipantsDir = defaults.ParticipantsDir
	}
	if cfg.PhotoFilename == "" {
		cfg.PhotoFilename = defaults.PhotoFilename
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = defaults.ImageExtensions
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if aliases == nil {
		aliases = naming.NewAliasTable(nil)
	}

	extensions := make(map[string]struct{}, len(cfg.ImageExtensions))
	for _, ext := range cfg.ImageExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = struct{}{}
	}

	redirects := make(map[string]string, len(cfg.Redirects))
	for input, url := range cfg.Redirects {
		redirects[naming.Lower(strings.TrimSpace(input))] = url
	}

	return &Service{
		repo:            repo,
		blobs:           blobs,
		aliases:         aliases,
		metrics:         metrics,
		logger:          logger.With(slog.String("component", "access-service")),
		participantsDir: strings.Trim(cfg.ParticipantsDir, "/"),
		photoFilename:   strings.Trim(cfg.PhotoFilename, "/"),
		extensions:      extensions,
		allowGuessed:    cfg.AllowGuessedNames,
		redirects:       redirects,
	}
}

// ValidateAccessCode reports whether input is allowed through the gate.
// Only a backing record counts, unless guessed names are allowed and the
// alias table knows the input.
func (s *Service) ValidateAccessCode(ctx context.Context, input string) (bool, error) {
	res, err := s.ResolveAccessCode(ctx, input)
	if err != nil {
		return false, err
	}
	return s.admits(res), nil
}

// Resolve runs the full chain: record lookup, photo resolution and redirect
func (s *Service) Resolve(ctx context.Context, input string) (*model.ResolvedIdentity, *Resolution, error) {
	res, err := s.ResolveAccessCode(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	photo := s.ResolvePhoto(ctx, res)
	res.PhotoTier = photo.Tier

	identity := &model.ResolvedIdentity{
		Input:         res.Input,
		Key:           res.Key,
		CanonicalName: res.CanonicalName,
		DisplayName:   res.DisplayName,
		PhotoURL:      photo.URL,
		Memo1:         res.Memo1,
		Memo2:         res.Memo2,
		Found:         s.admits(res),
		RedirectURL:   s.redirects[naming.Lower(res.Input)],
	}
	return identity, res, nil
}

// AccessCodes lists the active access codes, sorted by key
func (s *Service) AccessCodes(ctx context.Context) ([]*model.AccessCode, error) {
	codes, err := s.repo.AccessCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list access codes: %w", err)
	}
	active := make([]*model.AccessCode, 0, len(codes))
	for _, c := range codes {
		if c.Active {
			active = append(active, c)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

// GalleryImages returns the gallery of the record input resolves to
func (s *Service) GalleryImages(ctx context.Context, input string) ([]model.GalleryImage, error) {
	res, err := s.ResolveAccessCode(ctx, input)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, model.ErrAccessCodeNotFound
	}
	images, err := s.repo.GalleryImages(ctx, res.Key)
	if err != nil {
		return nil, fmt.Errorf("list gallery for %q: %w", res.Key, err)
	}
	return images, nil
}

func (s *Service) admits(res *Resolution) bool {
	return res.Found || (s.allowGuessed && res.Aliased)
}

// degraded records a lookup failure that the chain steps past. Context
// cancellation is the one failure that stops the chain.
func (s *Service) degraded(ctx context.Context, collection, key string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if !errors.Is(err, model.ErrNotPresent) {
		s.metrics.LookupDegraded(collection)
		s.logger.Debug("lookup degraded",
			slog.String("collection", collection),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
