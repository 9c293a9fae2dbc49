package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/passenger-registry/internal/config"
	"github.com/iliyamo/passenger-registry/internal/logger"
	"github.com/iliyamo/passenger-registry/internal/metrics"
	"github.com/iliyamo/passenger-registry/internal/middleware"
	"github.com/iliyamo/passenger-registry/internal/model"
	"github.com/iliyamo/passenger-registry/internal/queue"
	"github.com/iliyamo/passenger-registry/internal/repository"
	"github.com/iliyamo/passenger-registry/internal/service"
)

// PassengerHandler bundles dependencies for the passenger endpoints:
// CRUD and search here, spreadsheet import and export in their own files.
type PassengerHandler struct {
	Repo     *repository.PassengerRepo
	Importer *service.Importer
	Events   *service.Publisher
	Metrics  *metrics.Metrics
	Log      logger.Logger
	CacheCfg config.CacheConfig
	RDB      *redis.Client
}

func NewPassengerHandler(repo *repository.PassengerRepo, imp *service.Importer, ev *service.Publisher,
	m *metrics.Metrics, log logger.Logger, cacheCfg config.CacheConfig, rdb *redis.Client) *PassengerHandler {
	return &PassengerHandler{
		Repo: repo, Importer: imp, Events: ev,
		Metrics: m, Log: log, CacheCfg: cacheCfg, RDB: rdb,
	}
}

// List handles GET /api/passengers and returns every record, newest first.
func (h *PassengerHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context())
	if err != nil {
		h.Metrics.ErrorsCount.WithLabelValues("list").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error fetching passengers"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(items), "data": items})
}

// Get handles GET /api/passengers/:id.
func (h *PassengerHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Passenger not found"})
		}
		h.Metrics.ErrorsCount.WithLabelValues("get").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error fetching passenger"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

// Search handles GET /api/passengers/search?query= with a case-insensitive
// substring match across name, passport, registration number and code. An
// empty query returns the full collection.
func (h *PassengerHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	var (
		items []*model.Passenger
		err   error
	)
	if query == "" {
		items, err = h.Repo.List(c.Request().Context())
	} else {
		items, err = h.Repo.Search(c.Request().Context(), query)
	}
	if err != nil {
		h.Metrics.ErrorsCount.WithLabelValues("search").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error searching passengers"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(items), "data": items})
}

// Create handles POST /api/passengers. The body is decoded over the default
// record template, so omitted optional fields get their defaults before
// validation.
func (h *PassengerHandler) Create(c echo.Context) error {
	p := model.DefaultPassenger()
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Error creating passenger", "error": "invalid request body"})
	}
	if err := p.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Error creating passenger", "error": err.Error()})
	}

	if err := h.Repo.Create(c.Request().Context(), &p); err != nil {
		if errors.Is(err, repository.ErrDuplicatePassport) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Error creating passenger", "error": err.Error()})
		}
		h.Metrics.ErrorsCount.WithLabelValues("create").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error creating passenger"})
	}

	h.afterMutation(c, queue.ActionCreated, &p)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Passenger created successfully", "data": p})
}

// Update handles PUT /api/passengers/:id. The body is decoded over the
// stored record, so a partial body updates only the fields it names. The
// identifier and creation timestamp are preserved; updatedAt is refreshed.
func (h *PassengerHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	existing, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Passenger not found"})
		}
		h.Metrics.ErrorsCount.WithLabelValues("update").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error updating passenger"})
	}

	p := *existing
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Error updating passenger", "error": "invalid request body"})
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := p.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Error updating passenger", "error": err.Error()})
	}

	if err := h.Repo.Update(c.Request().Context(), &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePassport):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Error updating passenger", "error": err.Error()})
		case errors.Is(err, repository.ErrPassengerNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Passenger not found"})
		}
		h.Metrics.ErrorsCount.WithLabelValues("update").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error updating passenger"})
	}

	h.afterMutation(c, queue.ActionUpdated, &p)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Passenger updated successfully", "data": p})
}

// Delete handles DELETE /api/passengers/:id. Deletes are permanent.
func (h *PassengerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Passenger not found"})
		}
		h.Metrics.ErrorsCount.WithLabelValues("delete").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error deleting passenger"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Passenger not found"})
		}
		h.Metrics.ErrorsCount.WithLabelValues("delete").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error deleting passenger"})
	}

	h.afterMutation(c, queue.ActionDeleted, p)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Passenger deleted successfully", "data": p})
}

// afterMutation drops the cached list/search responses and publishes an
// audit event. Both are best-effort: the mutation already succeeded.
func (h *PassengerHandler) afterMutation(c echo.Context, action string, p *model.Passenger) {
	middleware.InvalidateCache(c.Request().Context(), h.CacheCfg, h.RDB)
	if h.Events != nil {
		_ = h.Events.Publish(context.WithoutCancel(c.Request().Context()), queue.AuditEvent{
			Action:        action,
			PassengerID:   p.ID,
			Passport:      p.Passport,
			PassengerName: p.PassengerName,
			OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
