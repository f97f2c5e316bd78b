// Package ocr wraps the Tesseract engine behind a small interface the
// intake layer and the CLI share. The parser never sees this package; it
// only consumes the text and confidence produced here.
package ocr

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// Result is the OCR output handed to the parser: the raw text blob and a
// crude quality estimate in [0,1].
type Result struct {
	Text       string
	Confidence float64
}

// Engine extracts text from an image file on disk.
type Engine interface {
	ExtractText(imagePath string) (Result, error)
}

// Tesseract runs OCR through the gosseract binding. A fresh client is
// created per call: gosseract clients are not safe for concurrent reuse,
// and receipts are small enough that client setup is noise.
type Tesseract struct {
	// DataPath is the tessdata directory holding the language models.
	DataPath string
	// Language is the tesseract language spec, e.g. "vie+eng".
	Language string
	// PSM is the page segmentation mode (6 = uniform text block).
	PSM int
}

// NewTesseract returns an engine configured for Vietnamese receipts.
func NewTesseract(dataPath, language string, psm int) *Tesseract {
	return &Tesseract{DataPath: dataPath, Language: language, PSM: psm}
}

// ExtractText OCRs one JPEG/PNG image. On engine failure it returns an
// empty Result and the error; an empty page with no engine error is a
// valid (empty-text) result.
func (t *Tesseract) ExtractText(imagePath string) (Result, error) {
	start := time.Now()

	client := gosseract.NewClient()
	defer client.Close()

	if t.DataPath != "" {
		if err := client.SetTessdataPrefix(t.DataPath); err != nil {
			return Result{}, fmt.Errorf("tesseract datapath %q: %w", t.DataPath, err)
		}
	}
	langs := strings.Split(t.Language, "+")
	if err := client.SetLanguage(langs...); err != nil {
		return Result{}, fmt.Errorf("tesseract language %q: %w", t.Language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(t.PSM)); err != nil {
		return Result{}, fmt.Errorf("tesseract psm %d: %w", t.PSM, err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return Result{}, fmt.Errorf("set image %q: %w", imagePath, err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("ocr failed for %q: %w", imagePath, err)
	}

	confidence := EstimateConfidence(text)
	log.Printf("ocr: %d chars in %s, confidence %.2f",
		len(text), time.Since(start).Round(time.Millisecond), confidence)

	return Result{Text: text, Confidence: confidence}, nil
}
