// Package api is the HTTP intake for bill scanning: it validates the
// multipart upload, spills it to a temp file for the OCR engine, and
// returns the parsed record as JSON. All extraction logic lives in the
// parser package; this layer only moves bytes and maps errors to status
// codes.
package api

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/subservice/bill-scanner/internal/ocr"
	"github.com/subservice/bill-scanner/internal/parser"
)

const version = "1.0.0"

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Handler holds the HTTP handlers for the scan API.
type Handler struct {
	Engine      ocr.Engine
	MaxFileSize int64
	// ReadTimeout and WriteTimeout are applied to the fiber server.
	// Zero means no limit; OCR can take seconds on a large image, so the
	// write timeout must cover the slowest scan.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewHandler wires the OCR engine into the intake layer.
func NewHandler(engine ocr.Engine, maxFileSize int64) *Handler {
	return &Handler{Engine: engine, MaxFileSize: maxFileSize}
}

// NewApp builds the fiber application with routes and middleware.
func (h *Handler) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  h.ReadTimeout,
		WriteTimeout: h.WriteTimeout,
		// fiber rejects larger bodies before the handler runs; keep
		// headroom so the size check below can answer with a 400
		BodyLimit: int(h.MaxFileSize)*2 + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			// oversized uploads are a client mistake, not a payload
			// negotiation problem
			if code == fiber.StatusRequestEntityTooLarge {
				code = fiber.StatusBadRequest
			}
			return writeError(c, code, err.Error())
		},
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/transactions/scan-bill", h.HandleScanBill)
	return app
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// HandleScanBill accepts one receipt image under the multipart field
// "file" and responds with the parsed BillRecord. Client mistakes
// (missing, oversized or non-image files) are 400s; an OCR engine
// failure is a 500. A readable image that yields no fields is still a
// 200 with an all-null record.
func (h *Handler) HandleScanBill(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	if err := h.validateUpload(fileHeader); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	// One temp file per request, handed to the OCR engine and removed on
	// every exit path. Nothing is persisted.
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tmpFile, err := os.CreateTemp("", "bill-scan-*"+ext)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	result, err := h.Engine.ExtractText(tmpPath)
	if err != nil {
		log.Printf("scan-bill: ocr failed for %q: %v", fileHeader.Filename, err)
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("OCR failed: %v", err))
	}

	record := parser.Parse(result.Text, result.Confidence)

	log.Printf("scan-bill: %q parsed, amount=%v account=%v bank=%v status=%q",
		fileHeader.Filename,
		deref(record.Amount), deref(record.AccountNumber),
		deref(record.BankName), record.Status)

	return c.JSON(record)
}

// validateUpload applies the intake rules: non-empty, within the size
// cap, an image content type and an image extension. The content type
// comes from the client, so the extension is checked as well.
func (h *Handler) validateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size == 0 {
		return fmt.Errorf("file is empty")
	}
	if h.MaxFileSize > 0 && fileHeader.Size > h.MaxFileSize {
		return fmt.Errorf("file size exceeds %dMB limit", h.MaxFileSize>>20)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("only JPG/PNG images are supported, got %q", contentType)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("only .jpg, .jpeg and .png files are allowed")
	}
	return nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// deref renders an optional field for logging.
func deref[T any](p *T) any {
	if p == nil {
		return "<nil>"
	}
	return *p
}
