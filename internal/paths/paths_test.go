package paths

import (
	"path/filepath"
	"testing"

	"github.com/quantmind-br/qlaunch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(values map[string]string) func(string) string {
	return func(name string) string {
		return values[name]
	}
}

func TestNewResolver(t *testing.T) {
	resolver := NewResolver(&config.Config{})
	require.NotNil(t, resolver)
	assert.NotNil(t, resolver.getenv)
}

func TestRoot(t *testing.T) {
	resolver := NewResolverWithEnv(nil, fakeEnv(map[string]string{"ProgramFiles": "  /pf  "}))

	assert.Equal(t, "/pf", resolver.Root("ProgramFiles"))
	assert.Empty(t, resolver.Root("LOCALAPPDATA"))
}

func TestInstallCandidates(t *testing.T) {
	cfg := &config.Config{
		Target: config.TargetConfig{
			InstallDirs: []config.InstallDir{
				{Root: "ProgramFiles", Path: "Tencent/WeChat/WeChat.exe"},
				{Root: "ProgramFiles(x86)", Path: "Tencent/WeChat/WeChat.exe"},
				{Root: "LOCALAPPDATA", Path: "Programs/Weixin/Weixin.exe"},
			},
		},
	}
	resolver := NewResolverWithEnv(cfg, fakeEnv(map[string]string{
		"ProgramFiles": "/pf",
		"LOCALAPPDATA": "/local",
	}))

	got := resolver.InstallCandidates()
	require.Len(t, got, 3)

	assert.Equal(t, InstallCandidate{
		Root: "ProgramFiles",
		Rel:  "Tencent/WeChat/WeChat.exe",
		Path: filepath.Join("/pf", "Tencent", "WeChat", "WeChat.exe"),
	}, got[0])
	assert.Equal(t, InstallCandidate{Root: "ProgramFiles(x86)", Rel: "Tencent/WeChat/WeChat.exe"}, got[1])
	assert.Equal(t, filepath.Join("/local", "Programs", "Weixin", "Weixin.exe"), got[2].Path)
}

func TestInstallCandidates_NilConfig(t *testing.T) {
	resolver := NewResolverWithEnv(nil, fakeEnv(nil))
	assert.Empty(t, resolver.InstallCandidates())
}

func TestDataDirAndDBFile(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		cfg := &config.Config{Paths: config.PathsConfig{DataDir: "/data", DBFile: "/data/x.db"}}
		resolver := NewResolverWithEnv(cfg, fakeEnv(nil))

		assert.Equal(t, "/data", resolver.DataDir())
		assert.Equal(t, "/data/x.db", resolver.DBFile())
	})

	t.Run("falls back to LOCALAPPDATA", func(t *testing.T) {
		resolver := NewResolverWithEnv(&config.Config{}, fakeEnv(map[string]string{"LOCALAPPDATA": "/local"}))

		assert.Equal(t, filepath.Join("/local", "qlaunch"), resolver.DataDir())
		assert.Equal(t, filepath.Join("/local", "qlaunch", "settings.db"), resolver.DBFile())
	})
}
