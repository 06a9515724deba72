package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"YSFinancials/models"
	"YSFinancials/pkg/config"
	"YSFinancials/pkg/ratelimit"
	"YSFinancials/pkg/store"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          "development",
		StoreTimeout:    2 * time.Second,
		RateLimitWindow: time.Minute,
		RateLimitMax:    5,
	}
}

func TestOpenStoreFallsBackWhenUnset(t *testing.T) {
	st := openStore(context.Background(), testConfig(), zap.NewNop())
	defer st.Close()

	err := st.Insert(context.Background(), models.NewInquiry("a", "a@b.co", "hello", time.Now()))
	assert.True(t, errors.Is(err, store.ErrUnavailable))
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := testConfig()
	cfg.StoreURI = "sqlite://:memory:"

	st := openStore(context.Background(), cfg, zap.NewNop())
	defer st.Close()
	require.NoError(t, st.Ping(context.Background()))
}

func TestOpenLimiterPrefersRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisURL = "redis://" + mr.Addr()

	l := openLimiter(context.Background(), cfg, zap.NewNop())
	defer l.Close()
	_, ok := l.(*ratelimit.Redis)
	assert.True(t, ok)
}

func TestOpenLimiterFallsBackToMemory(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "redis://127.0.0.1:1"

	l := openLimiter(context.Background(), cfg, zap.NewNop())
	defer l.Close()
	_, ok := l.(*ratelimit.Memory)
	assert.True(t, ok)
}

func TestSubmitCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"msg":"Message too short"}]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.AddCommand(submitCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"submit", "--name", "Jane", "--email", "jane@example.com", "--message", "hi", "--endpoint", srv.URL})
	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Equal(t, "Message too short\n", out.String())
}
