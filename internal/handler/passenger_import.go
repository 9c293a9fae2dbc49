package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/passenger-registry/internal/excel"
	"github.com/iliyamo/passenger-registry/internal/middleware"
	"github.com/iliyamo/passenger-registry/internal/service"
)

// BulkImport handles POST /api/passengers/bulk-import: a JSON array of
// field-keyed row objects, each submitted as an independent create. Row
// failures do not abort the batch; an empty or undecodable body does.
func (h *PassengerHandler) BulkImport(c echo.Context) error {
	var rows []json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&rows); err != nil {
		return c.JSON(http.StatusBadRequest, service.ImportResult{
			Success: false, Message: "invalid request body: expected an array of rows", Details: []string{},
		})
	}

	res := h.Importer.ImportRecords(c.Request().Context(), rows)
	return h.importResponse(c, res)
}

// ImportFile handles POST /api/passengers/import: a multipart upload of an
// .xlsx/.xls file. Only the first worksheet is read; its first row must be
// the column headers. The parsed rows then follow the same batch path as
// BulkImport.
func (h *PassengerHandler) ImportFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, service.ImportResult{
			Success: false, Message: "file is required", Details: []string{},
		})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, service.ImportResult{
			Success: false, Message: "could not read uploaded file", Details: []string{},
		})
	}
	defer f.Close()

	rows, err := excel.ParseWorkbook(f)
	if err != nil {
		msg := "Error reading Excel file"
		if errors.Is(err, excel.ErrEmptyWorkbook) {
			msg = "Excel file appears to be empty"
		}
		return c.JSON(http.StatusBadRequest, service.ImportResult{
			Success: false, Message: msg, Details: []string{},
		})
	}

	res := h.Importer.ImportRows(c.Request().Context(), rows)
	return h.importResponse(c, res)
}

func (h *PassengerHandler) importResponse(c echo.Context, res service.ImportResult) error {
	if res.Imported > 0 {
		middleware.InvalidateCache(c.Request().Context(), h.CacheCfg, h.RDB)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusOK, res)
}
