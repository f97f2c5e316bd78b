package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subservice/bill-scanner/internal/models"
	"github.com/subservice/bill-scanner/internal/ocr"
)

// fakeEngine stands in for tesseract so handler tests run without the
// native library installed.
type fakeEngine struct {
	result ocr.Result
	err    error
}

func (f *fakeEngine) ExtractText(imagePath string) (ocr.Result, error) {
	return f.result, f.err
}

// multipartBody builds a multipart request body with a single file part.
// The Content-Type of the part is set explicitly because validation
// reads it from the part header, not from file contents.
func multipartBody(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func scanRequest(t *testing.T, filename, contentType string, payload []byte) *http.Request {
	t.Helper()
	body, formType := multipartBody(t, filename, contentType, payload)
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/scan-bill", body)
	req.Header.Set("Content-Type", formType)
	return req
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var parsed map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed["error"]
}

func TestHandleHealth(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 10<<20)
	app := h.NewApp()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, body["version"])
}

func TestHandleScanBillSuccess(t *testing.T) {
	engine := &fakeEngine{result: ocr.Result{
		Text:       "Giao dịch thành công\n50.000 VND\nSTK: 1234567890\nVietcombank",
		Confidence: 0.91,
	}}
	h := NewHandler(engine, 10<<20)
	app := h.NewApp()

	resp, err := app.Test(scanRequest(t, "receipt.jpg", "image/jpeg", []byte("fake image bytes")))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var record models.BillRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	require.NotNil(t, record.Amount)
	require.Equal(t, int64(50000), *record.Amount)
	require.NotNil(t, record.AccountNumber)
	require.Equal(t, "1234567890", *record.AccountNumber)
	require.NotNil(t, record.BankName)
	require.Equal(t, "Vietcombank", *record.BankName)
	require.Equal(t, models.StatusSuccess, record.Status)
	require.Equal(t, 0.91, record.Confidence)
}

func TestHandleScanBillUnreadableImage(t *testing.T) {
	// OCR succeeded but produced nothing useful; still a 200 with an
	// all-null record.
	engine := &fakeEngine{result: ocr.Result{Text: "~~ @@ ##", Confidence: 0.1}}
	h := NewHandler(engine, 10<<20)
	app := h.NewApp()

	resp, err := app.Test(scanRequest(t, "receipt.png", "image/png", []byte("noise")))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var record models.BillRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	require.Nil(t, record.Amount)
	require.Nil(t, record.AccountNumber)
	require.Equal(t, models.StatusUnknown, record.Status)
}

func TestHandleScanBillMissingFile(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 10<<20)
	app := h.NewApp()

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/scan-bill", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeError(t, resp), "file")
}

func TestHandleScanBillWrongContentType(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 10<<20)
	app := h.NewApp()

	resp, err := app.Test(scanRequest(t, "receipt.jpg", "application/pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeError(t, resp), "JPG/PNG")
}

func TestHandleScanBillWrongExtension(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 10<<20)
	app := h.NewApp()

	// content type lies, extension gives it away
	resp, err := app.Test(scanRequest(t, "receipt.gif", "image/png", []byte("GIF89a")))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeError(t, resp), ".png")
}

func TestHandleScanBillEmptyFile(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 10<<20)
	app := h.NewApp()

	resp, err := app.Test(scanRequest(t, "receipt.jpg", "image/jpeg", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeError(t, resp), "empty")
}

func TestHandleScanBillOversized(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 64) // 64-byte cap
	app := h.NewApp()

	payload := bytes.Repeat([]byte("x"), 256)
	resp, err := app.Test(scanRequest(t, "receipt.jpg", "image/jpeg", payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleScanBillOCRFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract not initialized")}
	h := NewHandler(engine, 10<<20)
	app := h.NewApp()

	resp, err := app.Test(scanRequest(t, "receipt.jpg", "image/jpeg", []byte("fake image bytes")))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, decodeError(t, resp), "OCR failed")
}

func TestValidateUpload(t *testing.T) {
	h := NewHandler(&fakeEngine{}, 1<<20)

	makeHeader := func(name, contentType string, size int64) *multipart.FileHeader {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Type", contentType)
		return &multipart.FileHeader{Filename: name, Header: header, Size: size}
	}

	require.NoError(t, h.validateUpload(makeHeader("a.jpg", "image/jpeg", 100)))
	require.NoError(t, h.validateUpload(makeHeader("a.JPEG", "IMAGE/JPEG", 100)))
	require.NoError(t, h.validateUpload(makeHeader("a.png", "image/png", 100)))
	require.Error(t, h.validateUpload(makeHeader("a.jpg", "image/jpeg", 0)))
	require.Error(t, h.validateUpload(makeHeader("a.jpg", "image/jpeg", 2<<20)))
	require.Error(t, h.validateUpload(makeHeader("a.bmp", "image/bmp", 100)))
	require.Error(t, h.validateUpload(makeHeader("a.png.exe", "image/png", 100)))
}
