package factory

import (
	"context"
	"sync"
	"time"

	"github.com/Biskuitttt/Suratt/internal/config"
	"github.com/Biskuitttt/Suratt/internal/dependencies/mocks"
	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
	"github.com/Biskuitttt/Suratt/internal/storage/memory"
	"github.com/Biskuitttt/Suratt/internal/testutil"
)

// TestDebugToken is accepted by apps built with NewTestApp
const TestDebugToken = "debug-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockBlobs *mocks.BlobResolver
	Flaky     *mocks.FlakyStore
}

// TestOptions tweak NewTestAppWith
type TestOptions struct {
	AllowGuessedNames bool
	Site              *config.Site
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWith(TestOptions{})
}

// NewTestAppWith creates a test App with options applied
func NewTestAppWith(opts TestOptions) *TestApp {
	flaky := mocks.NewFlakyStore(memory.New())
	mockClock := mocks.NewMockClock(time.Date(2024, 7, 18, 12, 0, 0, 0, time.UTC))
	mockBlobs := mocks.NewBlobResolver()

	site := config.DefaultSite()
	site.Aliases = map[string]string{"kev": "Kevin", "angie": "Angeline"}
	site.Redirects = map[string]string{"firesorcerer123": "/special?from=fire"}
	if opts.Site != nil {
		site = *opts.Site
	}

	authCfg := auth.DefaultConfig()
	authCfg.DebugTokenHash = testDebugTokenHash()

	app := newWithDependencies(flaky, mockBlobs, mockClock, site, authCfg, opts.AllowGuessedNames, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockBlobs: mockBlobs,
		Flaky:     flaky,
	}
}

// SeedFixtures loads the records used across integration tests
func (t *TestApp) SeedFixtures(ctx context.Context) error {
	codes := []*model.AccessCode{
		{
			ID:          "Kevin",
			DisplayName: "Kevin",
			Memo1:       "Thanks for the laughs.",
			Memo2:       "See you next July.",
			Photo:       model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Kevin"},
			Active:      true,
		},
		{
			ID:          "firesorcerer123",
			DisplayName: "Angeline",
			Memo1:       "Keep the fire going.",
			Photo:       model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Angeline/Photo1.jpg"},
			Active:      true,
		},
		{
			ID:          "sarah",
			DisplayName: "Sarah",
			Photo:       model.PhotoRef{Kind: model.RefDocument, Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "sarah"}},
			Active:      true,
		},
	}
	for _, c := range codes {
		if err := t.Records.PutAccessCode(ctx, c); err != nil {
			return err
		}
	}

	if err := t.Records.PutPhoto(ctx, &model.PhotoRecord{ID: "sarah", StoragePath: "Peserta/Sarah/Photo1.jpg"}); err != nil {
		return err
	}
	t.MockBlobs.Set("Peserta/Sarah/Photo1.jpg", "https://blobs.example.com/Peserta/Sarah/Photo1.jpg")

	for _, img := range []model.GalleryImage{
		{ID: "beach", URL: "/gallery/kevin/beach.jpg", Caption: "Beach day", Order: 2},
		{ID: "arrival", URL: "/gallery/kevin/arrival.jpg", Caption: "Arrival", Order: 1},
	} {
		if err := t.Records.PutGalleryImage(ctx, "Kevin", img); err != nil {
			return err
		}
	}
	return nil
}

var (
	debugHashOnce sync.Once
	debugHash     string
)

// testDebugTokenHash hashes TestDebugToken once per process
func testDebugTokenHash() string {
	debugHashOnce.Do(func() {
		hash, err := auth.HashDebugToken(TestDebugToken)
		if err != nil {
			panic(err)
		}
		debugHash = hash
	})
	return debugHash
}
