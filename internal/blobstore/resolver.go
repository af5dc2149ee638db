package blobstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrPathRequired is returned when an empty storage path is resolved
var ErrPathRequired = errors.New("storage path is required")

// Resolver turns a stored object path into a fetchable URL
type Resolver interface {
	ResolveDownloadURL(ctx context.Context, storagePath string) (string, error)
}

// Backend names accepted by New
const (
	BackendFirebase   = "firebase"
	BackendCDN        = "cdn"
	BackendCloudinary = "cloudinary"
)

// Config selects and configures a resolver backend
type Config struct {
	Backend   string
	Bucket    string // firebase
	BaseURL   string // cdn
	CloudName string // cloudinary
	Transform string // cloudinary, optional delivery transform
}

// New builds the resolver named by cfg.Backend (firebase when empty)
func New(cfg Config) (Resolver, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFirebase:
		if cfg.Bucket == "" {
			return nil, errors.New("blob bucket required for firebase backend")
		}
		return &Firebase{Bucket: cfg.Bucket}, nil
	case BackendCDN:
		if cfg.BaseURL == "" {
			return nil, errors.New("blob base URL required for cdn backend")
		}
		return &CDN{BaseURL: cfg.BaseURL}, nil
	case BackendCloudinary:
		if cfg.CloudName == "" {
			return nil, errors.New("cloud name required for cloudinary backend")
		}
		return &Cloudinary{CloudName: cfg.CloudName, Transform: cfg.Transform}, nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Backend)
	}
}

// Firebase resolves paths to Firebase Storage download URLs
type Firebase struct {
	Bucket string
}

func (f *Firebase) ResolveDownloadURL(ctx context.Context, storagePath string) (string, error) {
	bucket, object, err := splitPath(storagePath)
	if err != nil {
		return "", err
	}
	if bucket == "" {
		bucket = f.Bucket
	}
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		bucket, url.PathEscape(object)), nil
}

// CDN serves objects from a flat base URL
type CDN struct {
	BaseURL string
}

func (c *CDN) ResolveDownloadURL(ctx context.Context, storagePath string) (string, error) {
	_, object, err := splitPath(storagePath)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + escapeSegments(object), nil
}

// Cloudinary builds image delivery URLs, optionally with a transform segment
type Cloudinary struct {
	CloudName string
	Transform string
}

func (c *Cloudinary) ResolveDownloadURL(ctx context.Context, storagePath string) (string, error) {
	_, object, err := splitPath(storagePath)
	if err != nil {
		return "", err
	}
	base := fmt.Sprintf("https://res.cloudinary.com/%s/image/upload", c.CloudName)
	if c.Transform != "" {
		base += "/" + strings.Trim(c.Transform, "/")
	}
	return base + "/" + escapeSegments(object), nil
}

// splitPath accepts "gs://bucket/object" or a bare object path
func splitPath(storagePath string) (bucket, object string, err error) {
	p := strings.TrimSpace(storagePath)
	if rest, ok := strings.CutPrefix(p, "gs://"); ok {
		bucket, object, _ = strings.Cut(rest, "/")
	} else {
		object = p
	}
	object = strings.Trim(object, "/")
	if object == "" {
		return "", "", ErrPathRequired
	}
	return bucket, object, nil
}

func escapeSegments(object string) string {
	segments := strings.Split(object, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
