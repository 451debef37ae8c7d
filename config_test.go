package vkdev

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
app_name: demo
enable_validation: true
device_extensions:
  - VK_KHR_swapchain
staging_buffer_size: 8388608
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.AppName)
	assert.True(t, cfg.EnableValidation)
	assert.Equal(t, []string{"VK_KHR_swapchain"}, cfg.DeviceExtensions)
	assert.Equal(t, uint64(8<<20), cfg.StagingBufferSize)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`enable_validation: false`))
	require.NoError(t, err)
	assert.Equal(t, "vkdev", cfg.AppName, "empty app name falls back to the default")
	assert.Zero(t, cfg.StagingBufferSize)
	assert.Empty(t, cfg.DeviceExtensions)
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`app_name: [broken`))
	assert.Error(t, err)

	_, err = ParseConfig(strings.NewReader(`staging_buffer_size: "not a number"`))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vkdev.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: from-file\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.AppName)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
