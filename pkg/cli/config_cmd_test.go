package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommands_RoundTrip(t *testing.T) {
	home := t.TempDir()
	run := func(args ...string) string {
		t.Helper()
		t.Setenv("HOME", home)
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	out := run("config", "set-profile", "--name", "local", "--host", "http://127.0.0.1:3264", "--limit", "5")
	assert.Contains(t, out, `Profile "local" saved`)

	out = run("config", "use-profile", "local")
	assert.Contains(t, out, `Active profile set to "local"`)

	out = run("config", "show")
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "http://127.0.0.1:3264")
	assert.Contains(t, out, "*")

	out = run("config", "show", "-o", "json")
	var cfg UserConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "local", cfg.CurrentProfile)
	assert.Equal(t, 5, cfg.Profiles["local"].Limit)
}

func TestConfigSetProfile_Validation(t *testing.T) {
	_, err := runCLI(t, "", "config", "set-profile", "--name", "x", "--output", "yaml")
	assert.ErrorContains(t, err, "unsupported output format")

	_, err = runCLI(t, "", "config", "set-profile", "--name", "x", "--limit", "0")
	assert.ErrorContains(t, err, "--limit must be positive")

	_, err = runCLI(t, "", "config", "set-profile")
	assert.Error(t, err)
}

func TestConfigUseProfile_Unknown(t *testing.T) {
	_, err := runCLI(t, "", "config", "use-profile", "nope")
	assert.Error(t, err)
}
