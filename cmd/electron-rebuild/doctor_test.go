package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/testutil"
)

func TestDoctorPassesWithConfiguredTools(t *testing.T) {
	f := newFixture(t)
	node := testutil.WriteScript(t, f.root, "node", "exit 0")
	testutil.WriteFile(t, f.root, filepath.Join("tools", "npm-cli.js"), "")
	testutil.WriteFile(t, f.root, filepath.Join("tools", "node-gyp.js"), "")
	testutil.WriteFile(t, f.prebuiltDir, filepath.Join("dist", "electron"), "")
	testutil.WriteFile(t, f.root, ".electron-rebuild.toml", `
[tools]
node = "`+node+`"
npm_cli = "tools/npm-cli.js"
node_gyp = "tools/node-gyp.js"
`)

	out, err := f.run("doctor")
	require.NoError(t, err)
	assert.Contains(t, out, messages.DoctorSuccessSummary)
	assert.Contains(t, out, "Electron executable: "+f.exe)
	assert.Contains(t, out, messages.DoctorStatusWarnLabel+" Headers")
	assert.Empty(t, f.runner.Calls())
}

func TestDoctorReportsInvalidConfig(t *testing.T) {
	f := newFixture(t)
	testutil.WriteFile(t, f.root, ".electron-rebuild.toml", `arch = "sparc"`)

	out, err := f.run("doctor")
	require.Error(t, err)
	assert.Equal(t, messages.DoctorFailureError, err.Error())
	assert.Contains(t, out, messages.DoctorStatusFailLabel+" Config")
	assert.Contains(t, out, messages.DoctorFailureSummary)
}
