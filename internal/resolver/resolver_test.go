package resolver

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/qlaunch/internal/config"
	"github.com/quantmind-br/qlaunch/internal/paths"
	"github.com/quantmind-br/qlaunch/internal/store"
	"github.com/quantmind-br/qlaunch/internal/winreg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAppID = `QuickLauncher\Weixin`
	testKey   = "UserSpecifiedPath"
)

// countingSource is an instrumented fake that records how often it was probed.
type countingSource struct {
	label  string
	path   string
	hit    bool
	probes int
}

func (c *countingSource) Describe() string { return c.label }

func (c *countingSource) Probe() (string, bool) {
	c.probes++
	return c.path, c.hit
}

func testConfig() *config.Config {
	return &config.Config{
		Target: config.TargetConfig{
			Name:          "WeChat",
			AppID:         testAppID,
			OverrideKey:   testKey,
			PrimaryKey:    `Software\Tencent\Weixin`,
			PrimaryValues: []string{"InstallPath", "Path"},
			ExeNames:      []string{"WeChat.exe", "weixin.exe"},
			InstallDirs: []config.InstallDir{
				{Root: "ProgramFiles", Path: "Tencent/WeChat/WeChat.exe"},
				{Root: "ProgramFiles", Path: "Tencent/Weixin/Weixin.exe"},
			},
			MachineKeys: []config.RegistryKey{
				{Key: `SOFTWARE\Tencent\WeChat`, Value: "InstallPath"},
				{Key: `SOFTWARE\WOW6432Node\Tencent\WeChat`, Value: "InstallPath"},
				{Key: `SOFTWARE\Tencent\Weixin`, Value: "InstallPath"},
				{Key: `SOFTWARE\WOW6432Node\Tencent\Weixin`, Value: "InstallPath"},
			},
		},
	}
}

type fixture struct {
	fs     afero.Fs
	store  *store.MemoryStore
	reader *winreg.MockReader
	env    map[string]string
	cfg    *config.Config
}

func newFixture() *fixture {
	return &fixture{
		fs:     afero.NewMemMapFs(),
		store:  store.NewMemoryStore(),
		reader: winreg.NewMockReader(),
		env:    map[string]string{},
		cfg:    testConfig(),
	}
}

func (f *fixture) resolver() *Resolver {
	pr := paths.NewResolverWithEnv(f.cfg, func(name string) string { return f.env[name] })
	return NewDefault(f.cfg, f.store, f.reader, pr, f.fs, nil)
}

func (f *fixture) file(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, path, []byte("MZ"), 0755))
	return path
}

func TestResolve_FirstHitWins(t *testing.T) {
	first := &countingSource{label: "first"}
	second := &countingSource{label: "second", path: "/apps/WeChat.exe", hit: true}
	third := &countingSource{label: "third", path: "/other/WeChat.exe", hit: true}

	r := New(Options{}, first, second, third)
	path, attempt := r.Resolve()

	assert.Equal(t, "/apps/WeChat.exe", path)
	assert.Equal(t, path, attempt.Result)
	assert.True(t, attempt.Found())
	assert.Equal(t, []string{"first", "second"}, attempt.Tried)
	assert.Equal(t, 1, first.probes)
	assert.Equal(t, 1, second.probes)
	assert.Equal(t, 0, third.probes, "sources after the hit must not be probed")
}

func TestResolve_EveryOrdering(t *testing.T) {
	// For each position of the single hitting source, the result comes from
	// that source and nothing after it is probed.
	for hit := 0; hit < 4; hit++ {
		sources := make([]*countingSource, 4)
		list := make([]Source, 4)
		for i := range sources {
			sources[i] = &countingSource{label: string(rune('a' + i))}
			if i >= hit {
				sources[i].hit = true
				sources[i].path = "/hit/" + sources[i].label
			}
			list[i] = sources[i]
		}

		path, attempt := New(Options{}, list...).Resolve()

		assert.Equal(t, "/hit/"+sources[hit].label, path)
		assert.Len(t, attempt.Tried, hit+1)
		for i := hit + 1; i < len(sources); i++ {
			assert.Zero(t, sources[i].probes)
		}
	}
}

func TestResolve_AllMiss(t *testing.T) {
	f := newFixture()
	path, attempt := f.resolver().Resolve()

	assert.Empty(t, path)
	assert.False(t, attempt.Found())
	assert.Equal(t, []string{
		`launcher override: QuickLauncher\Weixin\UserSpecifiedPath`,
		`registry: HKEY_CURRENT_USER\Software\Tencent\Weixin\InstallPath`,
		`registry: HKEY_CURRENT_USER\Software\Tencent\Weixin\Path`,
		`install dir: %ProgramFiles%\Tencent/WeChat/WeChat.exe`,
		`install dir: %ProgramFiles%\Tencent/Weixin/Weixin.exe`,
		`registry: HKEY_LOCAL_MACHINE\SOFTWARE\Tencent\WeChat\InstallPath`,
		`registry: HKEY_LOCAL_MACHINE\SOFTWARE\WOW6432Node\Tencent\WeChat\InstallPath`,
		`registry: HKEY_LOCAL_MACHINE\SOFTWARE\Tencent\Weixin\InstallPath`,
		`registry: HKEY_LOCAL_MACHINE\SOFTWARE\WOW6432Node\Tencent\Weixin\InstallPath`,
	}, attempt.Tried)

	_, again := f.resolver().Resolve()
	assert.Equal(t, attempt.Tried, again.Tried, "order must be reproducible")
	assert.Zero(t, f.store.Sets)
}

func TestResolve_OverrideWins(t *testing.T) {
	f := newFixture()
	exe := f.file(t, "/custom/WeChat.exe")
	require.NoError(t, f.store.Set(testAppID, testKey, "  "+exe+"  "))
	f.reader.Put(winreg.CurrentUser, `Software\Tencent\Weixin`, "InstallPath", f.file(t, "/apps/WeChat.exe"))

	path, attempt := f.resolver().Resolve()

	assert.Equal(t, exe, path)
	assert.Len(t, attempt.Tried, 1)
	assert.Empty(t, f.reader.Calls, "registry must not be read when the override hits")
}

func TestResolve_OverrideNotCheckedAgainstNaming(t *testing.T) {
	f := newFixture()
	odd := f.file(t, "/custom/launch-me.bin")
	require.NoError(t, f.store.Set(testAppID, testKey, odd))

	path, _ := f.resolver().Resolve()
	assert.Equal(t, odd, path)
}

func TestResolve_StaleOverrideIsSkippedNotDeleted(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.Set(testAppID, testKey, "/gone/WeChat.exe"))
	f.file(t, "/apps/wechat/WeChat.exe")
	f.reader.Put(winreg.CurrentUser, `Software\Tencent\Weixin`, "InstallPath", "/apps/wechat")

	path, attempt := f.resolver().Resolve()

	assert.Equal(t, filepath.Join("/apps/wechat", "WeChat.exe"), path)
	assert.Len(t, attempt.Tried, 2)

	stored, ok, err := f.store.Get(testAppID, testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/gone/WeChat.exe", stored)
}

func TestResolve_OverrideReadErrorIsAbsent(t *testing.T) {
	f := newFixture()
	f.store.GetErr = errors.New("hive unavailable")
	exe := f.file(t, "/pf/Tencent/WeChat/WeChat.exe")
	f.env["ProgramFiles"] = "/pf"

	path, attempt := f.resolver().Resolve()

	assert.Equal(t, exe, path)
	assert.Len(t, attempt.Tried, 4)
}

func TestResolve_MachineKeyOrder(t *testing.T) {
	f := newFixture()
	f.file(t, "/wow/WeChat.exe")
	f.file(t, "/weixin/weixin.exe")
	f.reader.Put(winreg.LocalMachine, `SOFTWARE\WOW6432Node\Tencent\WeChat`, "InstallPath", "/wow")
	f.reader.Put(winreg.LocalMachine, `SOFTWARE\Tencent\Weixin`, "InstallPath", "/weixin")

	path, attempt := f.resolver().Resolve()

	assert.Equal(t, filepath.Join("/wow", "WeChat.exe"), path)
	assert.Len(t, attempt.Tried, 7)
}

func TestResolve_PrimaryValueOrder(t *testing.T) {
	f := newFixture()
	f.file(t, "/a/WeChat.exe")
	f.file(t, "/b/WeChat.exe")
	f.reader.Put(winreg.CurrentUser, `Software\Tencent\Weixin`, "InstallPath", "/a")
	f.reader.Put(winreg.CurrentUser, `Software\Tencent\Weixin`, "Path", "/b")

	path, _ := f.resolver().Resolve()
	assert.Equal(t, filepath.Join("/a", "WeChat.exe"), path)
}

func TestRegistrySource(t *testing.T) {
	names := []string{"WeChat.exe", "weixin.exe"}

	tests := []struct {
		name   string
		files  []string
		value  string
		want   string
		wantOK bool
	}{
		{"direct exe", []string{"/x/WeChat.exe"}, "/x/WeChat.exe", "/x/WeChat.exe", true},
		{"direct exe upper case", []string{"/x/WECHAT.EXE"}, "/x/WECHAT.EXE", "/x/WECHAT.EXE", true},
		{"trimmed value", []string{"/x/WeChat.exe"}, "  /x/WeChat.exe \t", "/x/WeChat.exe", true},
		{"directory first name", []string{"/x/WeChat.exe", "/x/weixin.exe"}, "/x", filepath.Join("/x", "WeChat.exe"), true},
		{"directory second name", []string{"/x/weixin.exe"}, "/x", filepath.Join("/x", "weixin.exe"), true},
		{"directory without exe", []string{"/x/readme.txt"}, "/x", "", false},
		{"file that is not exe", []string{"/x/config.ini"}, "/x/config.ini", "", false},
		{"empty value", nil, "   ", "", false},
		{"missing path", nil, "/nowhere", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, file := range tt.files {
				require.NoError(t, afero.WriteFile(fs, file, []byte("MZ"), 0644))
			}
			reader := winreg.NewMockReader()
			reader.Put(winreg.LocalMachine, `SOFTWARE\Tencent\WeChat`, "InstallPath", tt.value)

			src := RegistrySource(reader, winreg.LocalMachine, `SOFTWARE\Tencent\WeChat`, "InstallPath", names, fs)
			got, ok := src.Probe()

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistrySource_ReadError(t *testing.T) {
	reader := &winreg.MockReader{Err: errors.New("access denied")}
	src := RegistrySource(reader, winreg.CurrentUser, `Software\Tencent\Weixin`, "InstallPath", []string{"WeChat.exe"}, afero.NewMemMapFs())

	_, ok := src.Probe()
	assert.False(t, ok)
}

func TestInstallDirSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pf/Tencent/WeChat/WeChat.exe", []byte("MZ"), 0644))

	hit := InstallDirSource("ProgramFiles", `Tencent\WeChat\WeChat.exe`, "/pf/Tencent/WeChat/WeChat.exe", fs)
	got, ok := hit.Probe()
	assert.True(t, ok)
	assert.Equal(t, "/pf/Tencent/WeChat/WeChat.exe", got)
	assert.Equal(t, `install dir: %ProgramFiles%\Tencent\WeChat\WeChat.exe`, hit.Describe())

	unset := InstallDirSource("ProgramFiles(x86)", `Tencent\WeChat\WeChat.exe`, "", fs)
	_, ok = unset.Probe()
	assert.False(t, ok)
}

func TestRemember(t *testing.T) {
	t.Run("valid path is persisted", func(t *testing.T) {
		f := newFixture()
		exe := f.file(t, "/picked/WeChat.exe")
		r := f.resolver()

		got, err := r.Remember(`"` + exe + `"`)
		require.NoError(t, err)
		assert.Equal(t, exe, got)

		stored, ok, err := f.store.Get(testAppID, testKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, exe, stored)

		path, attempt := f.resolver().Resolve()
		assert.Equal(t, exe, path)
		assert.Len(t, attempt.Tried, 1, "next run short-circuits at the override")
	})

	t.Run("missing file is rejected without writing", func(t *testing.T) {
		f := newFixture()
		_, err := f.resolver().Remember("/nope/WeChat.exe")

		assert.ErrorIs(t, err, ErrInvalidManualPath)
		assert.Zero(t, f.store.Sets)
	})

	t.Run("directory is rejected", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.fs.MkdirAll("/picked", 0755))

		_, err := f.resolver().Remember("/picked")
		assert.ErrorIs(t, err, ErrInvalidManualPath)
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.resolver().Remember("   ")
		assert.ErrorIs(t, err, ErrInvalidManualPath)
	})

	t.Run("write failure keeps the path", func(t *testing.T) {
		f := newFixture()
		exe := f.file(t, "/picked/WeChat.exe")
		boom := errors.New("registry is read-only")
		f.store.SetErr = boom

		got, err := f.resolver().Remember(exe)

		assert.Equal(t, exe, got)
		assert.ErrorIs(t, err, ErrPersist)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no store", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/a.exe", []byte("MZ"), 0644))

		got, err := New(Options{Fs: fs}).Remember("/a.exe")
		assert.Equal(t, "/a.exe", got)
		assert.ErrorIs(t, err, ErrPersist)
	})
}

func TestVerify(t *testing.T) {
	f := newFixture()
	exe := f.file(t, "/apps/WeChat.exe")
	r := f.resolver()

	assert.True(t, r.Verify(exe))
	require.NoError(t, f.fs.Remove(exe))
	assert.False(t, r.Verify(exe))
}

func TestSourcesAndSourceFunc(t *testing.T) {
	calls := 0
	src := SourceFunc{Label: "fake", Fn: func() (string, bool) {
		calls++
		return "/x", true
	}}

	r := New(Options{}, src)
	require.Len(t, r.Sources(), 1)
	assert.Equal(t, "fake", r.Sources()[0].Describe())

	path, _ := r.Resolve()
	assert.Equal(t, "/x", path)
	assert.Equal(t, 1, calls)
}

func TestFailureMessage(t *testing.T) {
	msg := FailureMessage("WeChat", &Attempt{Tried: []string{"first", "second"}})

	assert.Contains(t, msg, "could not find the WeChat install path")
	assert.Contains(t, msg, "  first\n  second\n")
}
