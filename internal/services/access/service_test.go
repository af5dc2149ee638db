package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Biskuitttt/Suratt/internal/dependencies/mocks"
	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/records"
	"github.com/Biskuitttt/Suratt/internal/services/naming"
	"github.com/Biskuitttt/Suratt/internal/storage/memory"
	"github.com/Biskuitttt/Suratt/internal/testutil"
)

type recordingMetrics struct {
	outcomes []string
	tiers    []string
	degraded []string
}

func (m *recordingMetrics) AccessResolved(outcome string) { m.outcomes = append(m.outcomes, outcome) }
func (m *recordingMetrics) PhotoResolved(tier string) { m.tiers = append(m.tiers, tier) }
func (m *recordingMetrics) LookupDegraded(collection string) { m.degraded = append(m.degraded, collection) }

type ServiceSuite struct {
	suite.Suite
	store   *mocks.FlakyStore
	repo    *records.Repository
	blobs   *mocks.BlobResolver
	metrics *recordingMetrics
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = mocks.NewFlakyStore(memory.New())
	s.repo = records.New(s.store)
	s.blobs = mocks.NewBlobResolver()
	s.metrics = &recordingMetrics{}
	s.ctx = context.Background()
	s.service = s.newService(DefaultConfig())
}

func (s *ServiceSuite) newService(cfg Config) *Service {
	aliases := naming.NewAliasTable(map[string]string{"kev": "Kevin"})
	return New(s.repo, s.blobs, aliases, s.metrics, testutil.NopLogger(), cfg)
}

func (s *ServiceSuite) putCode(code *model.AccessCode) {
	code.Active = true
	s.Require().NoError(s.repo.PutAccessCode(s.ctx, code))
}

// ResolveAccessCode tests

func (s *ServiceSuite) TestCasingVariantsFindStoredKey() {
	s.putCode(&model.AccessCode{ID: "Kevin", DisplayName: "Kevin"})

	for _, input := range []string{"Kevin", "kevin", "KEVIN", "kEvIn", "  kevin  "} {
		res, err := s.service.ResolveAccessCode(s.ctx, input)
		s.Require().NoError(err, input)
		s.True(res.Found, input)
		s.Equal("Kevin", res.Key, input)
		s.Equal("Kevin", res.CanonicalName, input)
	}
}

func (s *ServiceSuite) TestLowercaseStoredKeyFound() {
	s.putCode(&model.AccessCode{ID: "sarah", DisplayName: "Sarah"})

	res, err := s.service.ResolveAccessCode(s.ctx, "SARAH")
	s.Require().NoError(err)
	s.True(res.Found)
	s.Equal("sarah", res.Key)
}

func (s *ServiceSuite) TestWhitespaceStrippedVariantFound() {
	s.putCode(&model.AccessCode{ID: "maryjane", DisplayName: "Mary Jane"})

	res, err := s.service.ResolveAccessCode(s.ctx, "Mary Jane")
	s.Require().NoError(err)
	s.True(res.Found)
	s.Equal("maryjane", res.Key)
	s.Equal("Mary Jane", res.DisplayName)
}

func (s *ServiceSuite) TestVariantsTriedInOrder() {
	res, err := s.service.ResolveAccessCode(s.ctx, "KEVIN")
	s.Require().NoError(err)

	s.Equal([]string{
		"accessCodes/KEVIN", "accessCodes/kevin", "accessCodes/Kevin",
		"participants/KEVIN", "participants/kevin", "participants/Kevin",
	}, s.store.Gets())
	s.Len(res.Attempts, 6)
	for _, a := range res.Attempts {
		s.Equal(OutcomeNotPresent, a.Outcome)
	}
}

func (s *ServiceSuite) TestStopsAtFirstHit() {
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin"})

	_, err := s.service.ResolveAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	s.Equal([]string{"accessCodes/kevin"}, s.store.Gets())
}

func (s *ServiceSuite) TestMemoTextCarried() {
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin", Memo1: "hello", Memo2: "again"})

	res, err := s.service.ResolveAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	s.Equal("hello", res.Memo1)
	s.Equal("again", res.Memo2)
}

func (s *ServiceSuite) TestParticipantsCollectionIsAlternatePath() {
	s.Require().NoError(s.repo.PutParticipant(s.ctx, &model.Participant{
		ID:          "Angeline",
		DisplayName: "Angeline",
		Photo:       model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Angeline/Photo1.jpg"},
		Active:      true,
	}))

	res, err := s.service.ResolveAccessCode(s.ctx, "angeline")
	s.Require().NoError(err)
	s.True(res.Found)
	s.Equal(model.CollectionParticipants, res.Collection)
	s.Equal("Angeline", res.Key)
}

func (s *ServiceSuite) TestInactiveRecordSkipped() {
	s.Require().NoError(s.repo.PutAccessCode(s.ctx, &model.AccessCode{ID: "kevin", DisplayName: "Kevin", Active: false}))

	res, err := s.service.ResolveAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	s.False(res.Found)
	s.Equal(OutcomeInactive, res.Attempts[0].Outcome)
}

func (s *ServiceSuite) TestMissingDisplayNameFallsBackToKey() {
	s.putCode(&model.AccessCode{ID: "budi"})

	res, err := s.service.ResolveAccessCode(s.ctx, "budi")
	s.Require().NoError(err)
	s.True(res.Found)
	s.Equal("Budi", res.CanonicalName)
}

func (s *ServiceSuite) TestAliasGivesCanonicalNameWithoutRecord() {
	res, err := s.service.ResolveAccessCode(s.ctx, "kev")
	s.Require().NoError(err)
	s.False(res.Found)
	s.True(res.Aliased)
	s.Equal("Kevin", res.CanonicalName)
	s.Empty(res.Key)
}

func (s *ServiceSuite) TestUnknownInputGuessesCapitalizedName() {
	res, err := s.service.ResolveAccessCode(s.ctx, "doesnotexist")
	s.Require().NoError(err)
	s.False(res.Found)
	s.False(res.Aliased)
	s.Equal("Doesnotexist", res.CanonicalName)
	s.Equal([]string{OutcomeGuessed}, s.metrics.outcomes)
}

func (s *ServiceSuite) TestEmptyInputRejected() {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := s.service.ResolveAccessCode(s.ctx, input)
		s.ErrorIs(err, model.ErrInvalidInput)
	}
}

func (s *ServiceSuite) TestResolutionIsIdempotent() {
	s.putCode(&model.AccessCode{ID: "Kevin", DisplayName: "Kevin", Memo1: "m"})

	first, err := s.service.ResolveAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	second, err := s.service.ResolveAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	s.Equal(first, second)

	identity1, _, err := s.service.Resolve(s.ctx, "kev")
	s.Require().NoError(err)
	identity2, _, err := s.service.Resolve(s.ctx, "kev")
	s.Require().NoError(err)
	s.Equal(identity1, identity2)
}

// Degradation tests

func (s *ServiceSuite) TestTransientFailureDegradesToNextCollection() {
	s.Require().NoError(s.repo.PutParticipant(s.ctx, &model.Participant{ID: "kevin", DisplayName: "Kevin", Active: true}))
	s.store.Fail(model.CollectionAccessCodes, model.ErrTransientFailure)

	res, err := s.service.ResolveAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	s.True(res.Found)
	s.Equal(model.CollectionParticipants, res.Collection)
	s.Equal(OutcomeFailed, res.Attempts[0].Outcome)
	s.NotEmpty(res.Attempts[0].Error)
	s.Contains(s.metrics.degraded, model.CollectionAccessCodes)
}

func (s *ServiceSuite) TestTotalOutageStillGuesses() {
	s.store.Fail(model.CollectionAccessCodes, errors.New("connection refused"))
	s.store.Fail(model.CollectionParticipants, errors.New("connection refused"))

	identity, _, err := s.service.Resolve(s.ctx, "kevin")
	s.Require().NoError(err)
	s.False(identity.Found)
	s.Equal("/Peserta/Kevin/Photo1.jpg", identity.PhotoURL)
}

func (s *ServiceSuite) TestCancellationIsNotDegraded() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.store.Fail(model.CollectionAccessCodes, context.Canceled)

	_, err := s.service.ResolveAccessCode(ctx, "kevin")
	s.ErrorIs(err, context.Canceled)
}

// ResolvePhoto tests

func (s *ServiceSuite) photoFor(input string) Photo {
	res, err := s.service.ResolveAccessCode(s.ctx, input)
	s.Require().NoError(err)
	return s.service.ResolvePhoto(s.ctx, res)
}

func (s *ServiceSuite) TestPhotoPathWithExtensionUsedVerbatim() {
	s.putCode(&model.AccessCode{ID: "FireSorcerer123", DisplayName: "Angeline",
		Photo: model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Angeline/Photo1.jpg"}})

	res, err := s.service.ResolveAccessCode(s.ctx, "FireSorcerer123")
	s.Require().NoError(err)
	s.Equal("Angeline", res.DisplayName)

	photo := s.service.ResolvePhoto(s.ctx, res)
	s.Equal("/Peserta/Angeline/Photo1.jpg", photo.URL)
	s.Equal(TierDirectPath, photo.Tier)
}

func (s *ServiceSuite) TestPhotoExtensionMatchIsCaseInsensitive() {
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Kevin/IMG_01.JPEG"}})

	s.Equal(Photo{URL: "/Peserta/Kevin/IMG_01.JPEG", Tier: TierDirectPath}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoURLUsedVerbatim() {
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefPath, Path: "https://img.example.com/p?id=3"}})

	s.Equal(Photo{URL: "https://img.example.com/p?id=3", Tier: TierDirectPath}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoDirectoryPrefixGetsFilename() {
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Kevin"}})

	s.Equal(Photo{URL: "/Peserta/Kevin/Photo1.jpg", Tier: TierDirectory}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoDirectoryPrefixTrailingSlash() {
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Kevin/"}})

	s.Equal("/Peserta/Kevin/Photo1.jpg", s.photoFor("kevin").URL)
}

func (s *ServiceSuite) TestPhotoRecordURL() {
	s.Require().NoError(s.repo.PutPhoto(s.ctx, &model.PhotoRecord{ID: "kevin", URL: "https://cdn.example.com/kevin.png"}))
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefDocument,
		Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "kevin"}}})

	s.Equal(Photo{URL: "https://cdn.example.com/kevin.png", Tier: TierRecord}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoRecordStoragePathGoesThroughBlobStore() {
	s.blobs.Set("Peserta/Kevin/Photo1.jpg", "https://blobs.example.com/kevin?token=abc")
	s.Require().NoError(s.repo.PutPhoto(s.ctx, &model.PhotoRecord{ID: "kevin", StoragePath: "Peserta/Kevin/Photo1.jpg"}))
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefDocument,
		Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "kevin"}}})

	photo := s.photoFor("kevin")
	s.Equal("https://blobs.example.com/kevin?token=abc", photo.URL)
	s.NotEqual("Peserta/Kevin/Photo1.jpg", photo.URL)
	s.Equal([]string{"Peserta/Kevin/Photo1.jpg"}, s.blobs.Calls)
}

func (s *ServiceSuite) TestPhotoStorageRefGoesThroughBlobStore() {
	s.putCode(&model.AccessCode{ID: "kevin", Photo: model.PhotoRef{Kind: model.RefStorage, Path: "gs://bucket/Peserta/Kevin.jpg"}})

	s.Equal(Photo{URL: "mock://gs://bucket/Peserta/Kevin.jpg", Tier: TierRecord}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoBlobFailureFallsBackToConventional() {
	s.blobs.Err = errors.New("signing failed")
	s.Require().NoError(s.repo.PutPhoto(s.ctx, &model.PhotoRecord{ID: "k1", StoragePath: "Peserta/Kevin/Photo1.jpg"}))
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin", Photo: model.PhotoRef{Kind: model.RefDocument,
		Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "k1"}}})

	s.Equal(Photo{URL: "/Peserta/Kevin/Photo1.jpg", Tier: TierConventional}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoRecordWithoutLocationUsesRecordID() {
	s.Require().NoError(s.repo.PutPhoto(s.ctx, &model.PhotoRecord{ID: "Kevin"}))
	s.putCode(&model.AccessCode{ID: "kev1", Photo: model.PhotoRef{Kind: model.RefDocument,
		Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "Kevin"}}})

	s.Equal(Photo{URL: "/Peserta/Kevin/Photo1.jpg", Tier: TierRecord}, s.photoFor("kev1"))
}

func (s *ServiceSuite) TestPhotoMissingRecordUsesLastSegment() {
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin", Photo: model.PhotoRef{Kind: model.RefDocument,
		Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "Sarah"}}})

	s.Equal(Photo{URL: "/Peserta/Sarah/Photo1.jpg", Tier: TierMissingRecord}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoUnreadableRecordTreatedAsMissing() {
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin", Photo: model.PhotoRef{Kind: model.RefDocument,
		Document: model.DocumentPath{Collection: model.CollectionPhotos, Key: "Sarah"}}})
	s.store.Fail(model.CollectionPhotos, model.ErrTransientFailure)

	s.Equal(Photo{URL: "/Peserta/Sarah/Photo1.jpg", Tier: TierMissingRecord}, s.photoFor("kevin"))
	s.Contains(s.metrics.degraded, model.CollectionPhotos)
}

func (s *ServiceSuite) TestPhotoInvalidReferenceUsesLastSegment() {
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin", Photo: model.PhotoRef{Kind: model.RefInvalid, Raw: "a/b/Sarah"}})

	s.Equal(Photo{URL: "/Peserta/Sarah/Photo1.jpg", Tier: TierMissingRecord}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoAbsentRefUsesCanonicalName() {
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin"})

	s.Equal(Photo{URL: "/Peserta/Kevin/Photo1.jpg", Tier: TierConventional}, s.photoFor("kevin"))
}

func (s *ServiceSuite) TestPhotoForAliasWithoutRecord() {
	s.Equal(Photo{URL: "/Peserta/Kevin/Photo1.jpg", Tier: TierConventional}, s.photoFor("kev"))

	valid, err := s.service.ValidateAccessCode(s.ctx, "kev")
	s.Require().NoError(err)
	s.False(valid)
}

func (s *ServiceSuite) TestPhotoConventionsConfigurable() {
	s.service = s.newService(Config{ParticipantsDir: "/guests/", PhotoFilename: "avatar.png"})
	s.putCode(&model.AccessCode{ID: "kevin", DisplayName: "Kevin", Photo: model.PhotoRef{Kind: model.RefPath, Path: "/guests/Kevin"}})

	s.Equal("/guests/Kevin/avatar.png", s.photoFor("kevin").URL)
	s.Equal("/guests/Nobody/avatar.png", s.photoFor("nobody").URL)
}

func (s *ServiceSuite) TestPhotoTierReported() {
	s.photoFor("doesnotexist")
	s.Equal([]string{"conventional"}, s.metrics.tiers)
}

// ValidateAccessCode tests

func (s *ServiceSuite) TestValidateRequiresBackingRecord() {
	s.putCode(&model.AccessCode{ID: "Kevin", DisplayName: "Kevin"})

	valid, err := s.service.ValidateAccessCode(s.ctx, "kevin")
	s.Require().NoError(err)
	s.True(valid)

	valid, err = s.service.ValidateAccessCode(s.ctx, "doesnotexist")
	s.Require().NoError(err)
	s.False(valid)
}

func (s *ServiceSuite) TestGuessedNamesAllowedByPolicy() {
	cfg := DefaultConfig()
	cfg.AllowGuessedNames = true
	s.service = s.newService(cfg)

	valid, err := s.service.ValidateAccessCode(s.ctx, "kev")
	s.Require().NoError(err)
	s.True(valid)

	valid, err = s.service.ValidateAccessCode(s.ctx, "doesnotexist")
	s.Require().NoError(err)
	s.False(valid)
}

// Resolve tests

func (s *ServiceSuite) TestResolveScenarioDoesNotExist() {
	identity, res, err := s.service.Resolve(s.ctx, "doesnotexist")
	s.Require().NoError(err)

	s.False(identity.Found)
	s.Equal("/Peserta/Doesnotexist/Photo1.jpg", identity.PhotoURL)
	s.Equal(TierConventional, res.PhotoTier)
}

func (s *ServiceSuite) TestResolveScenarioFireSorcerer() {
	s.putCode(&model.AccessCode{ID: "FireSorcerer123", DisplayName: "Angeline", Memo1: "Happy July",
		Photo: model.PhotoRef{Kind: model.RefPath, Path: "/Peserta/Angeline/Photo1.jpg"}})

	identity, _, err := s.service.Resolve(s.ctx, "FireSorcerer123")
	s.Require().NoError(err)

	s.Equal(&model.ResolvedIdentity{
		Input:         "FireSorcerer123",
		Key:           "FireSorcerer123",
		CanonicalName: "Angeline",
		DisplayName:   "Angeline",
		PhotoURL:      "/Peserta/Angeline/Photo1.jpg",
		Memo1:         "Happy July",
		Found:         true,
	}, identity)
}

func (s *ServiceSuite) TestResolveRedirectKeyedByLowercasedInput() {
	cfg := DefaultConfig()
	cfg.Redirects = map[string]string{"Kevin": "/special/kevin"}
	s.service = s.newService(cfg)
	s.putCode(&model.AccessCode{ID: "Kevin", DisplayName: "Kevin"})

	identity, _, err := s.service.Resolve(s.ctx, "KEVIN")
	s.Require().NoError(err)
	s.Equal("/special/kevin", identity.RedirectURL)
}

// Listing tests

func (s *ServiceSuite) TestAccessCodesListsActiveSorted() {
	s.putCode(&model.AccessCode{ID: "zed"})
	s.putCode(&model.AccessCode{ID: "amy"})
	s.Require().NoError(s.repo.PutAccessCode(s.ctx, &model.AccessCode{ID: "old", Active: false}))

	codes, err := s.service.AccessCodes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(codes, 2)
	s.Equal("amy", codes[0].ID)
	s.Equal("zed", codes[1].ID)
}

func (s *ServiceSuite) TestAccessCodesError() {
	s.store.Fail(model.CollectionAccessCodes, model.ErrTransientFailure)

	_, err := s.service.AccessCodes(s.ctx)
	s.ErrorIs(err, model.ErrTransientFailure)
}

func (s *ServiceSuite) TestGalleryImagesForResolvedKey() {
	s.putCode(&model.AccessCode{ID: "kevin"})
	s.Require().NoError(s.repo.PutGalleryImage(s.ctx, "kevin", model.GalleryImage{ID: "b", URL: "/b.jpg", Order: 2}))
	s.Require().NoError(s.repo.PutGalleryImage(s.ctx, "kevin", model.GalleryImage{ID: "a", URL: "/a.jpg", Order: 1}))

	images, err := s.service.GalleryImages(s.ctx, "KEVIN")
	s.Require().NoError(err)
	s.Require().Len(images, 2)
	s.Equal("a", images[0].ID)
}

func (s *ServiceSuite) TestGalleryImagesUnknownCode() {
	_, err := s.service.GalleryImages(s.ctx, "kev")
	s.ErrorIs(err, model.ErrAccessCodeNotFound)
}
