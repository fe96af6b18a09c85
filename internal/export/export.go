// Package export writes match records as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name; an empty name means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q: %w", s, errs.ErrValidation)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// RecordRow is the flattened export shape of a match record.
type RecordRow struct {
	ID                  int    `csv:"id" json:"id"`
	Season              string `csv:"season" json:"season"`
	MyDeck              string `csv:"my_deck" json:"my_deck"`
	OppDeck             string `csv:"opp_deck" json:"opp_deck"`
	Result              string `csv:"result" json:"result"`
	Turn                string `csv:"turn" json:"turn"`
	Coin                string `csv:"coin" json:"coin"`
	ForcedFirst         bool   `csv:"forced_first" json:"forced_first"`
	Rank                string `csv:"rank" json:"rank"`
	FirstMulliganHit    bool   `csv:"first_mulligan_hit" json:"first_mulligan_hit"`
	ExpandedHandTrapHit bool   `csv:"expanded_hand_trap_hit" json:"expanded_hand_trap_hit"`
	CardStuck           bool   `csv:"card_stuck" json:"card_stuck"`
	Note                string `csv:"note" json:"note"`
}

// RecordRows converts records to export rows, preserving order.
func RecordRows(recs []models.MatchRecord) []RecordRow {
	rows := make([]RecordRow, len(recs))
	for i, r := range recs {
		rows[i] = RecordRow{
			ID:                  r.ID,
			Season:              r.Season,
			MyDeck:              r.MyDeck,
			OppDeck:             r.OppDeck,
			Result:              string(r.Result),
			Turn:                string(r.Turn),
			Coin:                string(r.Coin),
			ForcedFirst:         r.ForcedFirst,
			Rank:                r.Rank,
			FirstMulliganHit:    r.FirstMulliganHit,
			ExpandedHandTrapHit: r.ExpandedHandTrapHit,
			CardStuck:           r.CardStuck,
			Note:                r.Note,
		}
	}
	return rows
}

// Options configures a file export.
type Options struct {
	Format     Format
	FilePath   string
	PrettyJSON bool
	Overwrite  bool
}

// Exporter writes slices of structs to a file.
type Exporter struct {
	opts Options
}

// NewExporter creates an Exporter.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export writes data to the configured file. data must be a slice of structs
// for CSV; any JSON-marshalable value is accepted for JSON.
func (e *Exporter) Export(data interface{}) (err error) {
	file, err := e.createFile()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %v: %w", e.opts.FilePath, closeErr, errs.ErrIO)
		}
	}()
	return Write(file, e.opts.Format, data, e.opts.PrettyJSON)
}

func (e *Exporter) createFile() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(e.opts.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %v: %w", err, errs.ErrIO)
	}

	if _, err := os.Stat(e.opts.FilePath); err == nil && !e.opts.Overwrite {
		return nil, fmt.Errorf("file already exists: %s: %w", e.opts.FilePath, errs.ErrInvalidOperation)
	}

	file, err := os.Create(e.opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("create export file: %v: %w", err, errs.ErrIO)
	}
	return file, nil
}

// Write encodes data to w. An empty slice yields a header-only CSV or "[]".
func Write(w io.Writer, format Format, data interface{}, prettyJSON bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if prettyJSON {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(data)
	case FormatCSV:
		return writeCSV(w, data)
	default:
		return fmt.Errorf("unsupported export format %q: %w", format, errs.ErrValidation)
	}
}

func writeCSV(w io.Writer, data interface{}) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("CSV export requires a slice, got %s: %w", v.Kind(), errs.ErrValidation)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("CSV export requires a slice of structs: %w", errs.ErrValidation)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders(elemType)); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if err := writer.Write(csvRow(elem)); err != nil {
			return fmt.Errorf("write CSV row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// csvHeaders uses the csv tag of each exported field, falling back to the field name.
func csvHeaders(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("csv")
		if !field.IsExported() || tag == "-" {
			continue
		}
		if tag == "" {
			tag = field.Name
		}
		headers = append(headers, tag)
	}
	return headers
}

func csvRow(v reflect.Value) []string {
	var row []string
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}
		row = append(row, valueToString(v.Field(i)))
	}
	return row
}

func valueToString(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', 1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t.Format(time.RFC3339)
		}
	}
	return fmt.Sprintf("%v", v.Interface())
}

// GenerateFilename returns a timestamped file name such as records_S38_20240101_120000.csv.
func GenerateFilename(prefix string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), format)
}
