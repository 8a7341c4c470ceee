package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/logging"
)

func localConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ContentDir = filepath.Join(dir, "output")
	cfg.Paths.LedgerPath = filepath.Join(dir, "state.json")
	cfg.Paths.SearchVolumePath = filepath.Join(dir, "search_volume.json")
	cfg.Pipeline.FastMode = true
	return cfg
}

func TestOrchestrateWithLocalBackends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := localConfig(t)
	application, err := New(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer application.Close()

	oc := OrchestrateConfig(cfg)
	oc.Company = "google"
	oc.Roles = []string{"software-engineer"}

	summary, err := application.Orchestrate(ctx, oc)
	require.NoError(t, err)
	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.Processed)

	_, err = os.Stat(filepath.Join(cfg.Paths.ContentDir, "company-google.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Paths.ContentDir, "qa-google-software-engineer.json"))
	require.NoError(t, err)

	again, err := application.Orchestrate(ctx, oc)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Processed)
	assert.Equal(t, 1, again.Skipped)
}

func TestNewRejectsUnknownGenerator(t *testing.T) {
	t.Parallel()

	cfg := localConfig(t)
	cfg.Pipeline.Generator = "chatgpt"

	_, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")

	cfg.ChatGPT.APIKey = "sk-test"
	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, application.Close())
}

func TestConfigMapping(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Quality.ReadabilityMin = 40
	cfg.Quality.PerSection = true
	cfg.Sampling.Percent = 25
	cfg.Pipeline.MaxRetries = 5
	cfg.Pipeline.RetryDelay = time.Second
	cfg.Pipeline.Worker = "w2"

	opts := QualityOptions(cfg)
	assert.Equal(t, 40.0, opts.Readability.MinScore)
	assert.Equal(t, 3, opts.Repetition.Threshold)
	assert.True(t, opts.PerSection)

	sc := SamplingConfig(cfg)
	assert.Equal(t, 25.0, sc.Percent)
	assert.True(t, sc.PrioritizeFlagged)
	assert.Equal(t, 40.0, sc.Readability.MinScore)

	oc := OrchestrateConfig(cfg)
	assert.Equal(t, 5, oc.MaxRetries)
	assert.Equal(t, time.Second, oc.RetryDelay)
	assert.Equal(t, "w2", oc.Worker)
	assert.True(t, oc.SkipExisting)
	assert.Equal(t, 4000, oc.MaxWords)
}
