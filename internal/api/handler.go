package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/botjournal/internal/domain/dto"
	"github.com/guttosm/botjournal/internal/domain/models"
	"github.com/guttosm/botjournal/internal/middleware"
	"github.com/guttosm/botjournal/internal/service"
)

const dateLayout = "2006-01-02"

// Handler exposes the trading journal over HTTP.
//
// It validates path and query parameters, delegates to the JournalService
// and maps service errors to status codes:
//   - service.ErrDayNotFound → 404
//   - service.ErrInvalidKind, service.ErrEmptyLog → 400
//   - anything else → 500
type Handler struct {
	svc service.JournalService
}

func NewHandler(svc service.JournalService) *Handler {
	return &Handler{svc: svc}
}

// IngestLog godoc
// @Summary      Ingest a bot log
// @Description  Parses a raw bot log and stores it as the base or compare day for the date found in the text
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        request  body      dto.IngestRequest   true  "Raw log"
// @Success      201      {object}  dto.IngestResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/logs [post]
func (h *Handler) IngestLog(c *gin.Context) {
	var req dto.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	res, err := h.svc.Ingest(c.Request.Context(), req.Text, req.Kind)
	if err != nil {
		h.fail(c, "failed to ingest log", err)
		return
	}

	c.JSON(http.StatusCreated, dto.IngestResponse{
		Date:       res.Date.Format(dateLayout),
		Kind:       res.Kind,
		TradeCount: len(res.Analysis.Trades),
		Analysis:   res.Analysis,
	})
}

// ListDays godoc
// @Summary      List stored days
// @Description  Returns summaries of stored days, optionally bounded by from/to (inclusive)
// @Tags         days
// @Produce      json
// @Param        from  query     string  false  "Start date YYYY-MM-DD" example(2025-03-01)
// @Param        to    query     string  false  "End date YYYY-MM-DD" example(2025-03-31)
// @Success      200   {array}   dto.DaySummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/days [get]
func (h *Handler) ListDays(c *gin.Context) {
	from, err := optionalDate(c.Query("from"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid from, expected YYYY-MM-DD", err)
		return
	}
	to, err := optionalDate(c.Query("to"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid to, expected YYYY-MM-DD", err)
		return
	}
	if from != nil && to != nil && to.Before(*from) {
		middleware.AbortWithError(c, http.StatusBadRequest, "to must not be before from", nil)
		return
	}

	days, err := h.svc.ListDays(c.Request.Context(), from, to)
	if err != nil {
		h.fail(c, "failed to list days", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDaySummaryResponses(days))
}

// GetDay godoc
// @Summary      Get a stored day
// @Tags         days
// @Produce      json
// @Param        date  path      string  true   "Trading date YYYY-MM-DD" example(2025-03-14)
// @Param        kind  query     string  false  "base or compare" default(base)
// @Success      200   {object}  models.DayAnalysis
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/days/{date} [get]
func (h *Handler) GetDay(c *gin.Context) {
	date, kind, ok := dayParams(c)
	if !ok {
		return
	}
	day, err := h.svc.GetDay(c.Request.Context(), date, kind)
	if err != nil {
		h.fail(c, "failed to fetch day", err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// DeleteDay godoc
// @Summary      Delete a stored day
// @Tags         days
// @Param        date  path  string  true   "Trading date YYYY-MM-DD" example(2025-03-14)
// @Param        kind  query string  false  "base or compare" default(base)
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/days/{date} [delete]
func (h *Handler) DeleteDay(c *gin.Context) {
	date, kind, ok := dayParams(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteDay(c.Request.Context(), date, kind); err != nil {
		h.fail(c, "failed to delete day", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DiffDay godoc
// @Summary      Diff compare day against base
// @Description  Matches trades of the stored compare day against the base day and reports added, removed, modified and id-only changes plus daily stat changes
// @Tags         days
// @Produce      json
// @Param        date  path      string  true  "Trading date YYYY-MM-DD" example(2025-03-14)
// @Success      200   {object}  dto.DiffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/days/{date}/diff [get]
func (h *Handler) DiffDay(c *gin.Context) {
	date, ok := pathDate(c)
	if !ok {
		return
	}
	res, err := h.svc.Diff(c.Request.Context(), date)
	if err != nil {
		h.fail(c, "failed to diff day", err)
		return
	}
	c.JSON(http.StatusOK, dto.DiffResponse{Date: date.Format(dateLayout), HasChanges: res.HasChanges(), Diff: *res})
}

// MergeDay godoc
// @Summary      Merge compare day into base
// @Description  Applies selected trades and/or daily stats from the compare day onto base, stores the result as base and drops the compare day
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date     path      string               true  "Trading date YYYY-MM-DD" example(2025-03-14)
// @Param        request  body      models.MergeOptions  true  "What to merge"
// @Success      200      {object}  models.DayAnalysis
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/days/{date}/merge [post]
func (h *Handler) MergeDay(c *gin.Context) {
	date, ok := pathDate(c)
	if !ok {
		return
	}
	var opts models.MergeOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid merge options", err)
		return
	}
	merged, err := h.svc.Merge(c.Request.Context(), date, opts)
	if err != nil {
		h.fail(c, "failed to merge day", err)
		return
	}
	c.JSON(http.StatusOK, merged)
}

// CompareLogs godoc
// @Summary      Diff two raw logs
// @Description  Parses both texts and diffs them without storing anything
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CompareRequest  true  "Base and compare log texts"
// @Success      200      {object}  models.DiffResult
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/compare [post]
func (h *Handler) CompareLogs(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	c.JSON(http.StatusOK, h.svc.CompareLogs(req.Base, req.Compare))
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrDayNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "day not found", err)
	case errors.Is(err, service.ErrInvalidKind), errors.Is(err, service.ErrEmptyLog):
		middleware.AbortWithError(c, http.StatusBadRequest, msg, err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, msg, err)
	}
}

func pathDate(c *gin.Context) (time.Time, bool) {
	d, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return time.Time{}, false
	}
	return d, true
}

func dayParams(c *gin.Context) (time.Time, models.DayKind, bool) {
	d, ok := pathDate(c)
	if !ok {
		return time.Time{}, "", false
	}
	kind := models.DayKind(c.DefaultQuery("kind", string(models.KindBase)))
	if !kind.Valid() {
		middleware.AbortWithError(c, http.StatusBadRequest, "kind must be base or compare", nil)
		return time.Time{}, "", false
	}
	return d, kind, true
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
