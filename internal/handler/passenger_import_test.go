package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/passenger-registry/internal/excel"
	"github.com/iliyamo/passenger-registry/internal/logger"
	"github.com/iliyamo/passenger-registry/internal/model"
	"github.com/iliyamo/passenger-registry/internal/service"
)

type memCreator struct {
	created []model.Passenger
}

func (m *memCreator) Create(_ context.Context, p *model.Passenger) error {
	m.created = append(m.created, *p)
	return nil
}

func importHandler(creator *memCreator) *PassengerHandler {
	imp := service.NewImporter(creator, nil, nil, logger.Nop())
	return &PassengerHandler{Importer: imp, Log: logger.Nop()}
}

func TestBulkImport(t *testing.T) {
	creator := &memCreator{}
	h := importHandler(creator)

	body := `[
		{"passengerName":"John Doe","passport":"AB123456","registrationNo":"REG001"},
		{"passengerName":"","passport":"CD789012","registrationNo":"REG002"}
	]`
	req := httptest.NewRequest(http.MethodPost, "/api/passengers/bulk-import", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.BulkImport(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Details, 1)
	assert.Contains(t, res.Details[0], "CD789012")
	require.Len(t, creator.created, 1)
	assert.Equal(t, "John Doe", creator.created[0].PassengerName)
}

func TestBulkImportRejectsNonArrayBody(t *testing.T) {
	h := importHandler(&memCreator{})

	req := httptest.NewRequest(http.MethodPost, "/api/passengers/bulk-import", strings.NewReader(`{"passengerName":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.BulkImport(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, "invalid request body: expected an array of rows", res.Message)
}

func multipartUpload(t *testing.T, build func() ([]byte, error)) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	content, err := build()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/passengers/import", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestImportFile(t *testing.T) {
	creator := &memCreator{}
	h := importHandler(creator)

	req, rec := multipartUpload(t, func() ([]byte, error) {
		p := model.DefaultPassenger()
		p.PassengerName = "John Doe"
		p.Passport = "AB123456"
		p.RegistrationNo = "REG001"
		f, err := excel.BuildPassengerWorkbook([]*model.Passenger{&p})
		if err != nil {
			return nil, err
		}
		defer f.Close()
		var buf bytes.Buffer
		if _, err := f.WriteTo(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.ImportFile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Imported)
	assert.Zero(t, res.Failed)
	require.Len(t, creator.created, 1)
	assert.Equal(t, "AB123456", creator.created[0].Passport)
}

func TestImportFileEmptyWorkbook(t *testing.T) {
	h := importHandler(&memCreator{})

	req, rec := multipartUpload(t, func() ([]byte, error) {
		f, err := excel.BuildPassengerWorkbook(nil)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		var buf bytes.Buffer
		if _, err := f.WriteTo(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.ImportFile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, "Excel file appears to be empty", res.Message)
}

func TestImportFileMissingFile(t *testing.T) {
	h := importHandler(&memCreator{})

	req := httptest.NewRequest(http.MethodPost, "/api/passengers/import", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.ImportFile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "passengers-export-2026-09-01.xlsx",
		exportFilename(model.Date{}, model.Date{}, now))
	assert.Equal(t, "passengers-export-2026-09-01-from-2026-01-01.xlsx",
		exportFilename(model.NewDate(2026, time.January, 1), model.Date{}, now))
	assert.Equal(t, "passengers-export-2026-09-01-from-2026-01-01-to-2026-06-30.xlsx",
		exportFilename(model.NewDate(2026, time.January, 1), model.NewDate(2026, time.June, 30), now))
}
