// Package records decodes raw documents into model types. Inconsistent
// historical shapes are normalized here, once, so the resolver can dispatch
// on variants instead of sniffing field types.
package records

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/storage"
)

// Field names used in stored documents
const (
	fieldDisplayName = "displayName"
	fieldName        = "name"
	fieldMemo1       = "memo1"
	fieldMemo2       = "memo2"
	fieldPhotoRef    = "photoRef"
	fieldPhoto       = "photo"
	fieldActive      = "active"
	fieldCreatedAt   = "createdAt"
	fieldURL         = "url"
	fieldStoragePath = "storagePath"
	fieldCaption     = "caption"
	fieldOrder       = "order"
	fieldRef         = "ref"
)

const storageScheme = "gs://"

// Repository provides typed access to the document store
type Repository struct {
	store storage.DocumentStore
}

// New creates a Repository over a document store
func New(store storage.DocumentStore) *Repository {
	return &Repository{store: store}
}

// AccessCode fetches the access code stored at key
func (r *Repository) AccessCode(ctx context.Context, key string) (*model.AccessCode, error) {
	doc, err := r.store.Get(ctx, model.CollectionAccessCodes, key)
	if err != nil {
		return nil, err
	}
	return accessCodeFromDocument(doc), nil
}

// Participant fetches the participant stored under a canonical name
func (r *Repository) Participant(ctx context.Context, key string) (*model.Participant, error) {
	doc, err := r.store.Get(ctx, model.CollectionParticipants, key)
	if err != nil {
		return nil, err
	}
	return &model.Participant{
		ID:          doc.Key,
		DisplayName: doc.FirstString(fieldDisplayName, fieldName),
		Photo:       DecodePhotoRef(photoField(doc)),
		Active:      doc.Bool(fieldActive, true),
		CreatedAt:   timeField(doc, fieldCreatedAt),
	}, nil
}

// Photo follows a document reference to a PhotoRecord
func (r *Repository) Photo(ctx context.Context, path model.DocumentPath) (*model.PhotoRecord, error) {
	doc, err := r.store.Get(ctx, path.Collection, path.Key)
	if err != nil {
		return nil, err
	}
	return &model.PhotoRecord{
		ID:          doc.Key,
		URL:         doc.String(fieldURL),
		StoragePath: doc.String(fieldStoragePath),
	}, nil
}

// AccessCodes lists every stored access code
func (r *Repository) AccessCodes(ctx context.Context) ([]*model.AccessCode, error) {
	docs, err := r.store.List(ctx, model.CollectionAccessCodes)
	if err != nil {
		return nil, err
	}
	codes := make([]*model.AccessCode, 0, len(docs))
	for _, doc := range docs {
		codes = append(codes, accessCodeFromDocument(doc))
	}
	return codes, nil
}

// GalleryImages lists the gallery for an access code key, sorted by order then ID
func (r *Repository) GalleryImages(ctx context.Context, key string) ([]model.GalleryImage, error) {
	docs, err := r.store.List(ctx, model.ImagesCollection(key))
	if err != nil {
		return nil, err
	}

	images := make([]model.GalleryImage, 0, len(docs))
	for _, doc := range docs {
		order, _ := doc.Number(fieldOrder)
		images = append(images, model.GalleryImage{
			ID:      doc.Key,
			URL:     doc.String(fieldURL),
			Caption: doc.String(fieldCaption),
			Order:   int(order),
		})
	}
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Order != images[j].Order {
			return images[i].Order < images[j].Order
		}
		return images[i].ID < images[j].ID
	})
	return images, nil
}

// PutAccessCode stores an access code. Used for fixtures, not provisioning.
func (r *Repository) PutAccessCode(ctx context.Context, code *model.AccessCode) error {
	fields := map[string]any{
		fieldDisplayName: code.DisplayName,
		fieldActive:      code.Active,
	}
	if code.Memo1 != "" {
		fields[fieldMemo1] = code.Memo1
	}
	if code.Memo2 != "" {
		fields[fieldMemo2] = code.Memo2
	}
	if !code.CreatedAt.IsZero() {
		fields[fieldCreatedAt] = code.CreatedAt.UTC().Format(time.RFC3339)
	}
	if raw := EncodePhotoRef(code.Photo); raw != nil {
		fields[fieldPhotoRef] = raw
	}
	return r.store.Put(ctx, model.CollectionAccessCodes, code.ID, fields)
}

// PutParticipant stores a participant
func (r *Repository) PutParticipant(ctx context.Context, p *model.Participant) error {
	fields := map[string]any{
		fieldDisplayName: p.DisplayName,
		fieldActive:      p.Active,
	}
	if !p.CreatedAt.IsZero() {
		fields[fieldCreatedAt] = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	if raw := EncodePhotoRef(p.Photo); raw != nil {
		fields[fieldPhotoRef] = raw
	}
	return r.store.Put(ctx, model.CollectionParticipants, p.ID, fields)
}

// PutPhoto stores a photo record in the photos collection
func (r *Repository) PutPhoto(ctx context.Context, photo *model.PhotoRecord) error {
	fields := map[string]any{}
	if photo.URL != "" {
		fields[fieldURL] = photo.URL
	}
	if photo.StoragePath != "" {
		fields[fieldStoragePath] = photo.StoragePath
	}
	return r.store.Put(ctx, model.CollectionPhotos, photo.ID, fields)
}

// PutGalleryImage stores one gallery entry under an access code key
func (r *Repository) PutGalleryImage(ctx context.Context, key string, img model.GalleryImage) error {
	return r.store.Put(ctx, model.ImagesCollection(key), img.ID, map[string]any{
		fieldURL:     img.URL,
		fieldCaption: img.Caption,
		fieldOrder:   img.Order,
	})
}

func accessCodeFromDocument(doc *model.Document) *model.AccessCode {
	return &model.AccessCode{
		ID:          doc.Key,
		DisplayName: doc.FirstString(fieldDisplayName, fieldName),
		Memo1:       doc.String(fieldMemo1),
		Memo2:       doc.String(fieldMemo2),
		Photo:       DecodePhotoRef(photoField(doc)),
		Active:      doc.Bool(fieldActive, true),
		CreatedAt:   timeField(doc, fieldCreatedAt),
	}
}

func photoField(doc *model.Document) any {
	if v, ok := doc.Fields[fieldPhotoRef]; ok && v != nil {
		return v
	}
	return doc.Fields[fieldPhoto]
}

func timeField(doc *model.Document, field string) time.Time {
	raw := doc.String(field)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DecodePhotoRef normalizes a raw photoRef field value into a PhotoRef variant
func DecodePhotoRef(raw any) model.PhotoRef {
	switch v := raw.(type) {
	case nil:
		return model.PhotoRef{Kind: model.RefAbsent}
	case string:
		s := strings.TrimSpace(v)
		switch {
		case s == "":
			return model.PhotoRef{Kind: model.RefAbsent}
		case strings.HasPrefix(s, storageScheme):
			return model.PhotoRef{Kind: model.RefStorage, Path: s, Raw: s}
		default:
			return model.PhotoRef{Kind: model.RefPath, Path: s, Raw: s}
		}
	case map[string]any:
		ref, _ := v[fieldRef].(string)
		path, err := model.ParseDocumentPath(ref)
		if err != nil {
			return model.PhotoRef{Kind: model.RefInvalid, Raw: ref}
		}
		return model.PhotoRef{Kind: model.RefDocument, Document: path, Raw: ref}
	default:
		return model.PhotoRef{Kind: model.RefInvalid}
	}
}

// EncodePhotoRef is the inverse of DecodePhotoRef; nil means "omit the field"
func EncodePhotoRef(ref model.PhotoRef) any {
	switch ref.Kind {
	case model.RefPath, model.RefStorage:
		return ref.Path
	case model.RefDocument:
		return map[string]any{fieldRef: ref.Document.String()}
	case model.RefInvalid:
		return map[string]any{fieldRef: ref.Raw}
	default:
		return nil
	}
}
