package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/subservice/bill-scanner/internal/models"
)

// JSONWriter writes a parsed bill record as JSON, the same shape the
// HTTP API serves.
type JSONWriter struct {
	// Pretty indents the output for terminal reading.
	Pretty bool
	// IncludeRawText keeps the OCR text blob in the output; it is
	// dropped by default because it dwarfs the structured fields.
	IncludeRawText bool
}

// WriteToFile writes the record to a JSON file at the given path.
func (w *JSONWriter) WriteToFile(path string, rec *models.BillRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rec)
}

// Write writes the record as JSON to the given writer.
func (w *JSONWriter) Write(out io.Writer, rec *models.BillRecord) error {
	if !w.IncludeRawText {
		trimmed := *rec
		trimmed.RawText = ""
		rec = &trimmed
	}

	enc := json.NewEncoder(out)
	if w.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rec)
}
