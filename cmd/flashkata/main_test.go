package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flag values stick to the package-level commands between runs, so tests
// spell out every flag they depend on.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSummaryDemo(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	out := run(t, "summary", "--demo", "--date", "2024-05-20", "--log-level", "ERROR")

	assert.Contains(t, out, "demo · 2024-05-20")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "0:25")
	assert.Contains(t, out, "Algorithms")
	assert.Contains(t, out, "└ Spanish")
	assert.Contains(t, out, "Deleted")
}

func TestSummaryRequiresOwner(t *testing.T) {
	rootCmd.SetArgs([]string{"summary", "--demo=false", "--owner", "", "--log-level", "ERROR", "--db", filepath.Join(t.TempDir(), "x.db")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.ErrorContains(t, rootCmd.Execute(), "--owner is required")
}

func TestMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashkata.db")

	out := run(t, "migrate", "--dry-run", "--db", path, "--log-level", "ERROR")
	assert.Contains(t, out, "pending: 0001_init.sql")

	out = run(t, "migrate", "--dry-run=false", "--db", path, "--log-level", "ERROR")
	assert.Contains(t, out, "applied 2 migration(s)")

	out = run(t, "migrate", "--db", path, "--log-level", "ERROR")
	assert.Contains(t, out, "database is up to date")
}
