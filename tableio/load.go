package tableio

import (
	"fmt"
	"github.com/dianpeng/sheetql/table"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
)

// Load reads a table from disk, the reader is picked by file extension.
// Unknown extensions are read as CSV.
func Load(path string) (table.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".parquet" {
		return ReadParquet(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	switch ext {
	case ".tsv", ".tab":
		return ReadCSV(file, '\t')
	case ".json":
		return ReadJSON(file)
	default:
		return ReadCSV(file, ',')
	}
}

// Write emits t in one of the Format* forms.
func Write(w io.Writer, t table.Table, format string, hc int) error {
	switch format {
	case FormatTable, "":
		Render(w, t, hc)
		return nil
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatTSV:
		return WriteTSV(w, t)
	case FormatJSON:
		return WriteJSON(w, t)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
