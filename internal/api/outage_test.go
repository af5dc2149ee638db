package api_test

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Biskuitttt/Suratt/internal/api"
	"github.com/Biskuitttt/Suratt/internal/api/apierr"
	"github.com/Biskuitttt/Suratt/internal/factory"
	"github.com/Biskuitttt/Suratt/internal/model"
	redisstorage "github.com/Biskuitttt/Suratt/internal/storage/redis"
	"github.com/Biskuitttt/Suratt/internal/testutil"
)

func TestCodesRedisOutageIsServiceUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	app, err := factory.New(factory.Config{
		Logger:      testutil.NopLogger(),
		StorageType: factory.StorageTypeRedis,
		RedisConfig: &redisCfg,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.Records.PutAccessCode(t.Context(), &model.AccessCode{ID: "kevin", DisplayName: "Kevin", Active: true}))

	ts := &testServer{
		handler: api.NewRouter(api.RouterConfig{
			Logger:        testutil.NopLogger(),
			AccessService: app.AccessService,
			AuthService:   app.AuthService,
		}),
	}

	rr := ts.request(http.MethodGet, "/api/v1/codes", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	mr.Close()

	rr = ts.request(http.MethodGet, "/api/v1/codes", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, apierr.CodeStoreUnavailable, decodeError(t, rr).Code)
}
