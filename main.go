package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/subservice/bill-scanner/internal/api"
	"github.com/subservice/bill-scanner/internal/config"
	"github.com/subservice/bill-scanner/internal/ocr"
	"github.com/subservice/bill-scanner/internal/parser"
	"github.com/subservice/bill-scanner/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP scan API instead of scanning files")
	outputFlag := flag.String("output", "", "Output JSON file path (defaults to stdout)")
	rawFlag := flag.Bool("raw", false, "Include the raw OCR text in the JSON output")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Vietnamese Bank Transfer Bill Scanner

Reads a bank-transfer receipt image (JPG/PNG), runs Tesseract OCR and
extracts the transaction as structured JSON: amount, recipient, account
number, bank, transaction code, transfer memo and status.

Usage:
  bill-scanner [flags] <receipt.jpg> [receipt2.png ...]
  bill-scanner -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Scan one receipt to stdout
  bill-scanner receipt.jpg

  # Scan with raw OCR text kept for debugging
  bill-scanner -raw receipt.jpg

  # Run the HTTP API (POST /api/transactions/scan-bill)
  BILLSCAN_SERVER_PORT=:9000 bill-scanner -serve

Configuration (environment):
  BILLSCAN_OCR_TESSERACT_DATAPATH   tessdata directory (default ./tessdata)
  BILLSCAN_OCR_TESSERACT_LANGUAGE   OCR languages (default vie+eng)
  BILLSCAN_OCR_TESSERACT_PSM        page segmentation mode (default 6)
  BILLSCAN_UPLOAD_MAX_FILE_SIZE_MB  upload cap for -serve (default 10)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("bill-scanner v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load config: %v\n", err)
	}

	engine := ocr.NewTesseract(
		cfg.OCR.Tesseract.DataPath,
		cfg.OCR.Tesseract.Language,
		cfg.OCR.Tesseract.PSM,
	)

	if *serveFlag {
		h := api.NewHandler(engine, cfg.Upload.MaxFileSizeBytes())
		h.ReadTimeout = cfg.Server.ReadTimeout
		h.WriteTimeout = cfg.Server.WriteTimeout
		app := h.NewApp()
		log.Printf("Scan API listening on %s", cfg.Server.Port)
		if err := app.Listen(cfg.Server.Port); err != nil {
			fatalf("Server failed: %v\n", err)
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(engine, inputPath, *outputFlag, *rawFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(engine ocr.Engine, inputPath, outputPath string, includeRaw bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return fmt.Errorf("expected a .jpg/.jpeg/.png file, got %q", ext)
	}

	result, err := engine.ExtractText(inputPath)
	if err != nil {
		return fmt.Errorf("OCR failed: %w", err)
	}

	record := parser.Parse(result.Text, result.Confidence)

	w := &writer.JSONWriter{Pretty: true, IncludeRawText: includeRaw}
	if outputPath != "" {
		if err := w.WriteToFile(outputPath, record); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
		fmt.Printf("Output: %s\n", outputPath)
		return nil
	}
	return w.Write(os.Stdout, record)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
