package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

func sampleRecords() []models.MatchRecord {
	return []models.MatchRecord{
		{
			ID: 0, MyDeck: "刻魔蛇眼", OppDeck: "天盃龍", Result: models.ResultWin,
			Turn: models.TurnFirst, Coin: models.CoinTails, ForcedFirst: true,
			Rank: "白金1", Season: "S38", Note: "good, game",
		},
		{
			ID: 3, MyDeck: "閃刀姬", OppDeck: "神碑", Result: models.ResultLoss,
			Turn: models.TurnSecond, Coin: models.CoinHeads, CardStuck: true,
			Rank: "鑽石5", Season: "S38",
		},
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, RecordRows(sampleRecords()), false))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"id", "season", "my_deck", "opp_deck", "result", "turn", "coin", "forced_first",
		"rank", "first_mulligan_hit", "expanded_hand_trap_hit", "card_stuck", "note",
	}, rows[0])
	assert.Equal(t, []string{
		"0", "S38", "刻魔蛇眼", "天盃龍", "win", "first", "tails", "true",
		"白金1", "false", "false", "false", "good, game",
	}, rows[1])
	assert.Equal(t, "3", rows[2][0])
	assert.Equal(t, "true", rows[2][11])
}

func TestWrite_CSVEmptyWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, RecordRows(nil), false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "id,season,"))
}

func TestWrite_CSVRejectsNonSlice(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, FormatCSV, RecordRow{}, false), errs.ErrValidation)
	assert.ErrorIs(t, Write(&buf, FormatCSV, []int{1}, false), errs.ErrValidation)
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, RecordRows(sampleRecords()), true))

	assert.Contains(t, buf.String(), "刻魔蛇眼", "non-ASCII is written unescaped")

	var got []RecordRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "loss", got[1].Result)
	assert.True(t, got[0].ForcedFirst)
}

func TestExporter_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.csv")
	rows := RecordRows(sampleRecords())

	require.NoError(t, NewExporter(Options{Format: FormatCSV, FilePath: path}).Export(rows))
	_, err := os.Stat(path)
	require.NoError(t, err)

	err = NewExporter(Options{Format: FormatCSV, FilePath: path}).Export(rows)
	assert.ErrorIs(t, err, errs.ErrInvalidOperation)

	require.NoError(t, NewExporter(Options{Format: FormatCSV, FilePath: path, Overwrite: true}).Export(rows[:1]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, errs.ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGenerateFilename(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "records_S38_20240102_150405.json", GenerateFilename("records_S38", FormatJSON, now))
}
