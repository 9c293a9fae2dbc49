package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/passenger-registry/internal/excel"
	"github.com/iliyamo/passenger-registry/internal/model"
	"github.com/iliyamo/passenger-registry/internal/view"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export handles GET /api/passengers/export. Query parameters shape the
// derived view before it is written out:
//
//	sortBy – field name (default createdAt)
//	order  – asc | desc (default desc)
//	from   – inclusive lower registrationDate bound, YYYY-MM-DD
//	to     – inclusive upper registrationDate bound, YYYY-MM-DD
//
// The generated file preserves the derived order exactly.
func (h *PassengerHandler) Export(c echo.Context) error {
	records, err := h.Repo.List(c.Request().Context())
	if err != nil {
		h.Metrics.ErrorsCount.WithLabelValues("export").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error fetching passengers"})
	}

	vm := view.New(records)
	if sortBy := c.QueryParam("sortBy"); sortBy != "" {
		vm.SortKey = sortBy
		vm.SortDir = view.Asc
	}
	if order := c.QueryParam("order"); order == view.Desc {
		vm.SortDir = view.Desc
	}

	var from, to model.Date
	if s := c.QueryParam("from"); s != "" {
		if from, err = model.ParseDate(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid from date"})
		}
	}
	if s := c.QueryParam("to"); s != "" {
		if to, err = model.ParseDate(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid to date"})
		}
	}
	vm.SetDateRange(from, to)

	derived := vm.Derive()
	if len(derived) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "No passengers to export"})
	}

	f, err := excel.BuildPassengerWorkbook(derived)
	if err != nil {
		h.Metrics.ErrorsCount.WithLabelValues("export").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error generating export"})
	}
	h.Metrics.ExportsServed.Inc()
	return writeWorkbook(c, f, exportFilename(from, to, time.Now().UTC()))
}

// Template handles GET /api/passengers/template and serves the one-row
// example workbook users fill in before importing.
func (h *PassengerHandler) Template(c echo.Context) error {
	f, err := excel.BuildTemplateWorkbook()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error generating template"})
	}
	h.Metrics.ExportsServed.Inc()
	return writeWorkbook(c, f, "passenger_template.xlsx")
}

// Instructions handles GET /api/passengers/instructions and serves the
// static column reference table.
func (h *PassengerHandler) Instructions(c echo.Context) error {
	f, err := excel.BuildInstructionsWorkbook()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error generating instructions"})
	}
	h.Metrics.ExportsServed.Inc()
	return writeWorkbook(c, f, "import_instructions.xlsx")
}

// exportFilename stamps the download with the export date and, when a
// date-range filter is active, the range boundaries.
func exportFilename(from, to model.Date, now time.Time) string {
	name := "passengers-export-" + now.Format("2006-01-02")
	if !from.IsZero() {
		name += "-from-" + from.String()
	}
	if !to.IsZero() {
		name += "-to-" + to.String()
	}
	return name + ".xlsx"
}

func writeWorkbook(c echo.Context, f *excelize.File, filename string) error {
	defer f.Close()
	c.Response().Header().Set(echo.HeaderContentType, contentTypeXLSX)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)
	_, err := f.WriteTo(c.Response())
	return err
}
