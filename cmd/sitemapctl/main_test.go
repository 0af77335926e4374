package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const seedPath = "../../testdata/catalog.json"

// run executes the CLI with args and returns stdout and the exit code it asked for
func run(t *testing.T, args ...string) (string, int, error) {
	t.Helper()

	exitCode := ExitSuccess
	origExiter, origErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(code int) { exitCode = code }
	cli.ErrWriter = io.Discard
	t.Cleanup(func() {
		cli.OsExiter = origExiter
		cli.ErrWriter = origErrWriter
	})

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"sitemapctl"}, args...))
	return out.String(), exitCode, err
}

func decodeStatus(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	return status
}

func TestImportAndCount(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	out, code, err := run(t, "--db", db, "import", seedPath)
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, code)
	status := decodeStatus(t, out)
	assert.Equal(t, true, status["success"])
	assert.Equal(t, float64(3), status["videos"])

	out, _, err = run(t, "--db", db, "count")
	require.NoError(t, err)
	assert.Equal(t, float64(3), decodeStatus(t, out)["videos"])
}

func TestImportSync(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")

	_, _, err := run(t, "--db", db, "import", seedPath)
	require.NoError(t, err)

	smaller := filepath.Join(dir, "smaller.json")
	require.NoError(t, os.WriteFile(smaller, []byte(`[{"id": "123", "title": "Only"}]`), 0o644))

	out, _, err := run(t, "--db", db, "import", "--sync", smaller)
	require.NoError(t, err)
	assert.Equal(t, true, decodeStatus(t, out)["sync"])

	out, _, err = run(t, "--db", db, "count")
	require.NoError(t, err)
	assert.Equal(t, float64(1), decodeStatus(t, out)["videos"])
}

func TestImportRequiresFile(t *testing.T) {
	_, code, err := run(t, "--db", filepath.Join(t.TempDir(), "catalog.db"), "import")
	assert.Error(t, err)
	assert.Equal(t, ExitUsageError, code)
}

func TestGenerateToStdout(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	_, _, err := run(t, "--db", db, "import", seedPath)
	require.NoError(t, err)

	out, code, err := run(t, "--db", db, "generate", "--site", "https://example.com/", "video")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Equal(t, 2, strings.Count(out, "<url>"))
	assert.Contains(t, out, "<loc>https://example.com/video/123/my-title</loc>")

	out, _, err = run(t, "--db", db, "generate", "--site", "https://example.com", "image")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "<url>"))

	out, _, err = run(t, "--db", db, "generate", "--site", "https://example.com", "index")
	require.NoError(t, err)
	assert.Contains(t, out, "<loc>https://example.com/image-sitemap.xml</loc>")
}

func TestGenerateToFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")
	output := filepath.Join(dir, "video-sitemap.xml")

	_, _, err := run(t, "--db", db, "import", seedPath)
	require.NoError(t, err)

	out, code, err := run(t, "--db", db, "generate", "--site", "https://example.com", "--output", output, "video")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, code)

	status := decodeStatus(t, out)
	assert.Equal(t, true, status["success"])
	assert.Equal(t, output, status["file"])

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(written), "<url>"))
	assert.Equal(t, float64(len(written)), status["bytes"])
}

func TestGenerateUnwritableOutputFails(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "missing", "sitemap.xml")

	out, code, err := run(t, "--db", filepath.Join(dir, "catalog.db"),
		"generate", "--site", "https://example.com", "--output", output, "index")
	assert.Error(t, err)
	assert.Equal(t, ExitDataError, code)
	assert.Empty(t, out)
}

func TestGenerateUsageErrors(t *testing.T) {
	t.Setenv("SITEMAP_SITE_URL", "")
	db := filepath.Join(t.TempDir(), "catalog.db")

	_, code, err := run(t, "--db", db, "generate", "video")
	assert.Error(t, err)
	assert.Equal(t, ExitUsageError, code)

	_, code, err = run(t, "--db", db, "generate", "--site", "https://example.com", "rss")
	assert.Error(t, err)
	assert.Equal(t, ExitUsageError, code)

	_, code, err = run(t, "--db", db, "generate", "--site", "https://example.com")
	assert.Error(t, err)
	assert.Equal(t, ExitUsageError, code)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitemap.xml")

	require.NoError(t, writeFile(path, "<urlset/>\n"))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>\n", string(written))

	assert.Error(t, writeFile(dir, "<urlset/>\n"), "a directory cannot be written as a file")
}
