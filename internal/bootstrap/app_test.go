package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoyoung/packform/config"
	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/logger"
	"github.com/ecoyoung/packform/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: "0", Environment: "test", AllowedOrigins: []string{"*"}},
		Labeler: config.LabelerConfig{LabelField: "Pack form", TextField: "Product", ExampleLimit: 5},
		Cache:   config.CacheConfig{Type: "memory", TTL: time.Hour, MaxEntries: 100},
		Logging: config.LoggingConfig{Level: "info"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Upload:  config.UploadConfig{MaxBytes: 1 << 20},
	}
}

func TestNewWithLogger(t *testing.T) {
	t.Run("memory cache wraps the detector", func(t *testing.T) {
		app, err := NewWithLogger(testConfig(), logger.NewNop())
		require.NoError(t, err)
		defer app.Close()

		assert.IsType(t, &usecase.CachedDetector{}, app.Detector)
		assert.NotNil(t, app.Metrics)
		assert.Equal(t, domain.Fields{Label: "Pack form", Text: "Product"}, app.Service.Fields())
	})

	t.Run("cache none uses the pattern detector directly", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cache.Type = "none"
		cfg.Metrics.Enabled = false

		app, err := NewWithLogger(cfg, nil)
		require.NoError(t, err)
		defer app.Close()

		assert.IsType(t, &usecase.PatternDetector{}, app.Detector)
		assert.Nil(t, app.Metrics)

		batch := app.Service.Process(context.Background(), []domain.Record{{Text: "Fish Oil"}})
		assert.Equal(t, "Oil", batch.Records[0].Label)
	})

	t.Run("configured fields reach the service", func(t *testing.T) {
		cfg := testConfig()
		cfg.Labeler.LabelField = "Form"
		cfg.Labeler.TextField = "Title"

		app, err := NewWithLogger(cfg, nil)
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, domain.Fields{Label: "Form", Text: "Title"}, app.Service.Fields())
	})

	t.Run("taxonomy extensions are applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "taxonomy.yaml")
		ext := "patterns:\n  - category: Powder\n    rules: ['\\bsachets?\\b']\n"
		require.NoError(t, os.WriteFile(path, []byte(ext), 0o644))

		cfg := testConfig()
		cfg.Labeler.TaxonomyFile = path
		app, err := NewWithLogger(cfg, nil)
		require.NoError(t, err)
		defer app.Close()

		batch := app.Service.Process(context.Background(), []domain.Record{{Text: "Electrolyte sachets"}})
		assert.Equal(t, "Powder", batch.Records[0].Label)
	})

	t.Run("invalid taxonomy file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "taxonomy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("patterns:\n  - category: Bundle\n    rules: [x]\n"), 0o644))

		cfg := testConfig()
		cfg.Labeler.TaxonomyFile = path
		_, err := NewWithLogger(cfg, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidTaxonomy))
	})
}

func TestApp_NewServer(t *testing.T) {
	app, err := NewWithLogger(testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	server := app.NewServer()
	assert.Equal(t, ":0", server.Addr())

	req := httptest.NewRequest("POST", "/api/v1/packforms/classify", strings.NewReader(`{"text":"Elderberry Gummies"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"Gummy"`)

	req = httptest.NewRequest("POST", "/api/v1/packforms/label", strings.NewReader(`{"rows":[{"Product":"Fish Oil"}]}`))
	req.Header.Set("Content-Type", "application/json")
	server.Handler().ServeHTTP(httptest.NewRecorder(), req)

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "packform_batches_total 1")
	assert.Contains(t, w.Body.String(), "packform_detection_cache_entries 2")
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	app, err := NewWithLogger(testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.NewServer().Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	app, err := NewWithLogger(testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Serve(ctx))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packform.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9191\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Server.Port)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
