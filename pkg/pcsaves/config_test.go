package pcsaves_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pcsaves/pkg/pcsaves"
)

func TestConfigProviderDefaultsWithNoFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	provider := &pcsaves.ConfigProvider{}
	cfg, err := provider.GetConfig()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Width)
	require.Equal(t, 4, cfg.Height)
	require.Equal(t, pcsaves.DefaultHold, cfg.Hold)
}

func TestConfigProviderLoadsFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pcsaves.yaml"), []byte("width: 6\nheight: 8\ntinyurl: true\n"), 0o600))

	provider := &pcsaves.ConfigProvider{}
	cfg, err := provider.GetConfig()
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Width)
	require.Equal(t, 8, cfg.Height)
	require.True(t, cfg.TinyURL)
}

func TestConfigProviderSetConfigBypassesFile(t *testing.T) {
	provider := &pcsaves.ConfigProvider{}
	provider.SetConfig(&pcsaves.Config{Width: 99})

	cfg, err := provider.GetConfig()
	require.NoError(t, err)
	require.Equal(t, 99, cfg.Width)
}

func TestConfigProviderResetReloads(t *testing.T) {
	provider := &pcsaves.ConfigProvider{}
	provider.SetConfig(&pcsaves.Config{Width: 1})
	provider.ResetConfig()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := provider.GetConfig()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Width)
}
