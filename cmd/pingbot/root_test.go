package main

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Properties(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "pingbot", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Short, "chat")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, expected := range []string{"run", "validate", "version"} {
		assert.True(t, names[expected], "missing subcommand: %s", expected)
	}
}

func TestAllCommands_HaveUsage(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		assert.NotEmpty(t, cmd.Use, "command %s should have usage", cmd.Name())
		assert.NotEmpty(t, cmd.Short, "command %s should have short description", cmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	assert.NotNil(t, runCmd.Flags().Lookup("config"))
	assert.NotNil(t, validateCmd.Flags().Lookup("config"))
	assert.NotNil(t, validateCmd.Flags().Lookup("show"))
	assert.NotNil(t, validateCmd.Flags().Lookup("json"))
	assert.NotNil(t, validateCmd.Flags().Lookup("strict"))
	assert.NotNil(t, versionCmd.Flags().Lookup("json"))
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, false)

	out := buf.String()
	assert.Contains(t, out, "pingbot ")
	assert.Contains(t, out, runtime.Version())
	assert.Contains(t, out, "commit:")
	// validate_test.go links in a test driver
	assert.Contains(t, out, testDriver)
}

func TestPrintVersion_JSON(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, true)

	var out BuildInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotEmpty(t, out.Version)
	assert.Equal(t, runtime.Version(), out.GoVersion)
	assert.Contains(t, out.Drivers, testDriver)
}

func TestCurrentBuild_LinkerValuesWin(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })
	Version, GitCommit = "v9.9.9", "abc123"

	info := currentBuild()

	assert.Equal(t, "v9.9.9", info.Version)
	assert.Equal(t, "abc123", info.Commit)
}
