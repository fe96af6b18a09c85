package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/MD-Companion/internal/config"
)

type cliEnv struct {
	dir        string
	dataPath   string
	configPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("MDC_DATA_PATH", "")
	t.Setenv("MDC_BACKUP_PASSWORD", "")
	t.Setenv("MDC_API_PORT", "")

	dir := t.TempDir()
	return &cliEnv{
		dir:        dir,
		dataPath:   filepath.Join(dir, "card_data.json"),
		configPath: filepath.Join(dir, "missing", "config.toml"),
	}
}

// run executes one command line the way a separate process would.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--data", e.dataPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_RecordLifecycle(t *testing.T) {
	e := newCLIEnv(t)

	out := e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "win", "--turn", "first", "--coin", "tails")
	assert.Contains(t, out, "Added record")
	assert.Contains(t, out, "S38")

	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "60GS", "--result", "loss", "--turn", "second", "--note", "bricked")

	// The data file is written after a mutating command.
	data, err := os.ReadFile(e.dataPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	out = e.mustRun(t, "record", "list")
	assert.Contains(t, out, "Season S38: 2 records")
	assert.Contains(t, out, "bricked")

	out = e.mustRun(t, "stats", "--deck", "刻魔蛇眼")
	assert.Contains(t, out, "Games")
	assert.Contains(t, out, "50.0%")
}

func TestCLI_RecordEditAndDelete(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "win", "--turn", "first")

	list := e.mustRun(t, "record", "list", "--order", "desc")
	require.Contains(t, list, "1 records")

	id := firstRecordID(t, e)
	out := e.mustRun(t, "record", "edit", id, "--note", "edited", "--stuck")
	assert.Contains(t, out, "edited")

	out = e.mustRun(t, "record", "show", id)
	assert.Contains(t, out, "edited")
	assert.Contains(t, out, "天盃龍")

	e.mustRun(t, "record", "delete", id)
	out = e.mustRun(t, "record", "list")
	assert.Contains(t, out, "0 records")

	_, err := e.run(t, "record", "show", id)
	assert.Error(t, err)
}

func TestCLI_InvalidInput(t *testing.T) {
	e := newCLIEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad result", []string{"record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "draw", "--turn", "first"}},
		{"unknown deck", []string{"record", "add", "--my", "Nope", "--opp", "天盃龍", "--result", "win", "--turn", "first"}},
		{"missing flag", []string{"record", "add", "--my", "刻魔蛇眼"}},
		{"bad id", []string{"record", "show", "abc"}},
		{"bad kind", []string{"deck", "list", "--kind", "theirs"}},
		{"bad export format", []string{"export", "--format", "xml", "--out", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, tt.args...)
			assert.Error(t, err)
		})
	}

	// Nothing was saved.
	_, err := os.Stat(e.dataPath)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_DeckCatalog(t *testing.T) {
	e := newCLIEnv(t)

	e.mustRun(t, "deck", "add", "--kind", "opponent", "Kashtira")
	out := e.mustRun(t, "deck", "list", "--kind", "opp")
	assert.Contains(t, out, "Kashtira")

	e.mustRun(t, "deck", "rename", "--kind", "opponent", "Kashtira", "Kash")
	out = e.mustRun(t, "deck", "list", "--kind", "opponent")
	assert.Contains(t, out, "Kash")
	assert.NotContains(t, out, "Kashtira")

	_, err := e.run(t, "deck", "add", "--kind", "opponent", "Kash")
	assert.Error(t, err, "duplicate names are rejected")

	e.mustRun(t, "deck", "delete", "--kind", "opponent", "Kash")
	out = e.mustRun(t, "deck", "list", "--kind", "opponent")
	assert.NotContains(t, out, "Kash")
}

func TestCLI_Seasons(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "win", "--turn", "first")

	out := e.mustRun(t, "season", "create", "S39")
	assert.Contains(t, out, "Active season: S39")

	out = e.mustRun(t, "season", "list")
	assert.Contains(t, out, "* S39")
	assert.Contains(t, out, "  S38")

	out = e.mustRun(t, "record", "list")
	assert.Contains(t, out, "Season S39: 0 records")

	out = e.mustRun(t, "season", "delete", "S38")
	assert.Contains(t, out, "Deleted 1 records of S38")

	_, err := e.run(t, "season", "delete", "S39")
	assert.Error(t, err, "the active season cannot be deleted")
}

func TestCLI_ExportToStdout(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "win", "--turn", "first", "--note", "a,b")

	out := e.mustRun(t, "export", "--out", "-")
	assert.Contains(t, out, "id,season,my_deck,opp_deck")
	assert.Contains(t, out, `"a,b"`)

	out = e.mustRun(t, "export", "--format", "json", "--out", "-")
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "刻魔蛇眼", rows[0]["my_deck"])
}

func TestCLI_ExportAndChartFiles(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "win", "--turn", "first")

	exportPath := filepath.Join(e.dir, "out.csv")
	e.mustRun(t, "export", "--out", exportPath)
	assert.FileExists(t, exportPath)

	_, err := e.run(t, "export", "--out", exportPath)
	assert.Error(t, err, "existing files need --overwrite")
	e.mustRun(t, "export", "--out", exportPath, "--overwrite")

	out := e.mustRun(t, "chart", "opponents")
	assert.Contains(t, out, "Chart written to")
	assert.FileExists(t, filepath.Join(e.dir, "charts", "opponents_S38.html"))
}

func TestCLI_Backups(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "win", "--turn", "first")

	out := e.mustRun(t, "backup", "create", "--name", "before")
	assert.Contains(t, out, "Backup written to")

	out = e.mustRun(t, "backup", "list")
	assert.Contains(t, out, "before")

	e.mustRun(t, "record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "loss", "--turn", "second")
	out = e.mustRun(t, "record", "list")
	require.Contains(t, out, "2 records")

	out = e.mustRun(t, "backup", "restore", "before.json")
	assert.Contains(t, out, "1 records loaded")

	out = e.mustRun(t, "record", "list")
	assert.Contains(t, out, "1 records")
}

func TestCLI_Version(t *testing.T) {
	e := newCLIEnv(t)
	out := e.mustRun(t, "version")
	assert.Contains(t, out, "md-companion")

	_, err := os.Stat(e.dataPath)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_ConfigInit(t *testing.T) {
	e := newCLIEnv(t)

	out := e.mustRun(t, "--backend", "sqlite", "config", "init")
	assert.Contains(t, out, "Config written to "+e.configPath)

	cfg, err := config.LoadFrom(e.configPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, e.dataPath, cfg.Storage.Path)
	assert.Equal(t, config.DefaultConfig().API.Port, cfg.API.Port)

	_, err = e.run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	e.mustRun(t, "config", "init", "--force")
	cfg, err = config.LoadFrom(e.configPath)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Storage.Backend)

	_, err = os.Stat(e.dataPath)
	assert.True(t, os.IsNotExist(err), "config init must not touch the data file")
}

func TestCLI_Status(t *testing.T) {
	e := newCLIEnv(t)
	dbPath := filepath.Join(e.dir, "records.db")

	e.mustRun(t, "--backend", "sqlite", "--data", dbPath,
		"record", "add", "--my", "刻魔蛇眼", "--opp", "天盃龍", "--result", "loss", "--turn", "second")

	out := e.mustRun(t, "--backend", "sqlite", "--data", dbPath, "status")
	assert.Contains(t, out, dbPath)
	assert.Contains(t, out, "Records:   1")
	assert.Contains(t, out, "Season:    S38")
	assert.Contains(t, out, "Schema:    v1")

	out = e.mustRun(t, "status")
	assert.Contains(t, out, "Records:   0")
	assert.NotContains(t, out, "Schema:")
}

func TestCLI_RankCompletion(t *testing.T) {
	e := newCLIEnv(t)

	out := e.mustRun(t, "__complete", "record", "add", "--rank", "")
	assert.Contains(t, out, "Master 1\n")
	assert.Contains(t, out, "Silver 5\n")

	out = e.mustRun(t, "__complete", "dist", "opponents", "--rank", "")
	assert.Contains(t, out, "ALL\n")
	assert.Contains(t, out, "Diamond\n")
	assert.NotContains(t, out, "Diamond 1")
}

// firstRecordID returns the id of the only record as text.
func firstRecordID(t *testing.T, e *cliEnv) string {
	t.Helper()
	out := e.mustRun(t, "export", "--format", "json", "--out", "-")
	var rows []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	return strconv.Itoa(rows[0].ID)
}
