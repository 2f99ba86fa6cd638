package cmd

import (
	"encoding/json"
	"testing"

	"github.com/quantmind-br/qlaunch/internal/winreg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources_JSONProbesEverySource(t *testing.T) {
	te := newTestEnv(t)
	te.file(t, wechatExe)
	te.file(t, "/other/weixin.exe")
	te.saveOverride(t, wechatExe)
	te.reg.Put(winreg.LocalMachine, `SOFTWARE\Tencent\Weixin`, "InstallPath", "/other")

	out, err := te.execute("sources", "--json")
	require.NoError(t, err)

	var reports []sourceReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))

	require.Len(t, reports, 12)
	assert.Equal(t, 1, reports[0].Order)
	assert.True(t, reports[0].Found)
	assert.Equal(t, wechatExe, reports[0].Path)

	var found []string
	for _, r := range reports {
		if r.Found {
			found = append(found, r.Path)
		}
	}
	assert.Equal(t, []string{wechatExe, "/other/weixin.exe"}, found)
}

func TestSources_Table(t *testing.T) {
	te := newTestEnv(t)

	out, err := te.execute("sources")

	require.NoError(t, err)
	assert.Contains(t, out, "UserSpecifiedPath")
	assert.Contains(t, out, "%ProgramFiles%")
}
