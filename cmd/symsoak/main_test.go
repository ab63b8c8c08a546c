package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/pkg/engine"
)

func TestListCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"list"})
	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "conservative")
	assert.Contains(t, out, "tournament")
	assert.Contains(t, out, "copy-on-write")
}

func TestApplyFlagsOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soak.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool: kitchensink\npopulation: 8\n"), 0o644))

	cfg, err := engine.LoadConfig(path)
	require.NoError(t, err)

	require.NoError(t, runCmd.Flags().Parse([]string{"--population", "3", "--properties", "identity,absorption"}))
	require.NoError(t, applyFlags(runCmd, &cfg))

	assert.Equal(t, "kitchensink", cfg.Pool)
	assert.Equal(t, 3, cfg.Population)
	assert.Equal(t, []string{"identity", "absorption"}, cfg.Properties)
}
