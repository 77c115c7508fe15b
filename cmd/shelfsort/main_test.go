package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShelfSort/internal/model"
	"github.com/piwi3910/ShelfSort/internal/project"
)

// isolate keeps the run away from real config files and inventories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const threeGames = "Name,Width,Height,Depth\nCatan,297,297,73\nAzul,265,265,75\nWingspan,300,300,95\n"

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCmd()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage: shelfsort")

	code, stdout, _ := runCmd("help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Commands:")

	code, _, stderr = runCmd("shuffle")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "shuffle"`)
}

func TestRun_Presets(t *testing.T) {
	dataDir := isolate(t)

	code, stdout, stderr := runCmd("presets", "--data-dir", dataDir)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Kallax cube")
	assert.Contains(t, stdout, "Billy shelf")

	_, err := os.Stat(project.InventoryPath(dataDir))
	assert.NoError(t, err, "default inventory is written on first use")
}

func TestRun_SortText(t *testing.T) {
	dataDir := isolate(t)
	input := writeCSV(t, threeGames)

	code, stdout, stderr := runCmd("sort", "--data-dir", dataDir, "--log-level", "error", input)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Shelf 1 (380 x 380 mm, 243 mm used)")
	assert.Contains(t, stdout, "Wingspan")
	assert.Contains(t, stdout, "1 of 2 shelves used, 3 games")
}

func TestRun_SortJSONWithExports(t *testing.T) {
	dataDir := isolate(t)
	input := writeCSV(t, threeGames)
	out := t.TempDir()
	pdfPath := filepath.Join(out, "plan.pdf")
	labelsPath := filepath.Join(out, "labels.pdf")
	savePath := filepath.Join(out, "collection.json")

	code, stdout, stderr := runCmd("sort",
		"--data-dir", dataDir,
		"--placement", "horizontal",
		"--shelves", "3",
		"--format", "json",
		"--pdf", pdfPath,
		"--labels", labelsPath,
		"--save", savePath,
		input,
	)
	require.Equal(t, exitOK, code, stderr)

	var result model.SortResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, model.PlacementHorizontal, result.Settings.Placement)
	assert.Len(t, result.Shelves, 3)
	assert.Equal(t, 3, result.GameCount())

	for _, p := range []string{pdfPath, labelsPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	saved, err := project.LoadCollection(savePath)
	require.NoError(t, err)
	assert.Equal(t, "games", saved.Name)
	require.NotNil(t, saved.Result)
	assert.Equal(t, 3, saved.Result.GameCount())

	// A saved collection sorts again as input.
	code, _, stderr = runCmd("sort", "--data-dir", dataDir, "--log-level", "error", savePath)
	assert.Equal(t, exitOK, code, stderr)
}

func TestRun_SortUnknownFormatWritesNothing(t *testing.T) {
	dataDir := isolate(t)
	input := writeCSV(t, threeGames)
	out := t.TempDir()
	pdfPath := filepath.Join(out, "plan.pdf")
	labelsPath := filepath.Join(out, "labels.pdf")
	savePath := filepath.Join(out, "collection.json")

	code, _, stderr := runCmd("sort", "--data-dir", dataDir, "--format", "xml",
		"--pdf", pdfPath, "--labels", labelsPath, "--save", savePath, input)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "unknown format")

	for _, path := range []string{pdfPath, labelsPath, savePath} {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "%s should not exist", path)
	}
}

func TestRun_SortPreset(t *testing.T) {
	dataDir := isolate(t)
	input := writeCSV(t, "Catan,297,297,73\n")

	code, stdout, stderr := runCmd("sort", "--data-dir", dataDir, "--preset", "Kallax cube", input)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "330 x 330 mm")

	code, _, stderr = runCmd("sort", "--data-dir", dataDir, "--preset", "Wardrobe", input)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, `unknown shelf preset "Wardrobe"`)
}

func TestRun_SortFailures(t *testing.T) {
	dataDir := isolate(t)

	tall := writeCSV(t, "Tower,200,400,50\n")
	code, stdout, stderr := runCmd("sort", "--data-dir", dataDir, tall)
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout, "no partial result is printed")
	assert.Contains(t, stderr, `game "Tower" does not fit vertically`)

	code, _, stderr = runCmd("sort", "--data-dir", dataDir, "--shelves", "0", writeCSV(t, threeGames))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "not enough space")

	code, _, stderr = runCmd("sort", "--data-dir", dataDir, writeCSV(t, "Name,Width,Height,Depth\nBroken,x,1,1\n"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "could not be imported")

	code, _, _ = runCmd("sort", "--data-dir", dataDir)
	assert.Equal(t, exitUsage, code)

	code, _, stderr = runCmd("sort", "--data-dir", dataDir, "--placement", "diagonal", tall)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "invalid")
}

func TestRun_Compare(t *testing.T) {
	dataDir := isolate(t)
	input := writeCSV(t, threeGames)

	code, stdout, stderr := runCmd("compare", "--data-dir", dataDir, "--log-level", "error", input)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "SCENARIO")
	assert.Contains(t, stdout, "Current Settings")
	assert.Contains(t, stdout, "FREE / FREE_ROTATION")

	code, stdout, stderr = runCmd("compare", "--data-dir", dataDir, "--format", "json", input)
	require.Equal(t, exitOK, code, stderr)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	assert.Len(t, rows, 9)

	chart := filepath.Join(dataDir, "compare.html")
	code, _, stderr = runCmd("compare", "--data-dir", dataDir, "--chart", chart, input)
	require.Equal(t, exitOK, code, stderr)
	body, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Scenario comparison")

	code, _, _ = runCmd("compare", "--data-dir", dataDir, "--format", "xml", input)
	assert.Equal(t, exitUsage, code)
}
