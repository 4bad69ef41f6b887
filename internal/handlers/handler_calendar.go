package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/dto"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/gin-gonic/gin"
)

type calendarHandler struct {
	calendarService portssvc.CalendarSvc
}

func newCalendarHandler(cal portssvc.CalendarSvc) *calendarHandler {
	return &calendarHandler{calendarService: cal}
}

// registerCalendarRoutes registers the schedule grid routes.
func registerCalendarRoutes(rg *gin.RouterGroup, cal portssvc.CalendarSvc) {
	h := newCalendarHandler(cal)

	calendar := rg.Group("/calendar")
	{
		calendar.GET("", h.getMonth)
		calendar.GET("/days/:date", h.selectDay)
	}
}

// resolveMonth applies the optional month and nav parameters.
// An empty month means the current one.
func resolveMonth(cal portssvc.CalendarSvc, params dto.CalendarParams) (domain.MonthRef, error) {
	today := cal.Today()
	m := domain.CurrentMonth(today)
	if params.Month != "" {
		parsed, err := domain.ParseMonth(params.Month)
		if err != nil {
			return domain.MonthRef{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		m = parsed
	}
	switch params.Nav {
	case dto.NavPrev:
		m = m.Prev()
	case dto.NavNext:
		m = m.Next()
	case dto.NavToday:
		m = domain.CurrentMonth(today)
	}
	return m, nil
}

// getMonth godoc
// @Summary Month grid
// @Description Lays out a month with leading blanks and the submitted flag of every day.
// @Tags calendar
// @Produce json
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Param nav query string false "Step from month" Enums(prev, next, today)
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /calendar [get]
func (h *calendarHandler) getMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.CalendarParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for calendar", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	m, err := resolveMonth(h.calendarService, params)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve month", nil)
		return
	}
	grid, err := h.calendarService.MonthGrid(c.Request.Context(), m)
	if err != nil {
		respondError(c, logger, err, "Failed to build month grid", nil)
		return
	}
	c.JSON(http.StatusOK, dto.CalendarResponse{Grid: grid})
}

// selectDay godoc
// @Summary Select a day
// @Description Returns the editor form of a day: the stored entry or empty defaults.
// @Tags calendar
// @Produce json
// @Param date path string true "Day as YYYY-MM-DD"
// @Success 200 {object} domain.CheckinForm
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /calendar/days/{date} [get]
func (h *calendarHandler) selectDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	form, err := h.calendarService.SelectDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, logger, err, "Failed to load day", nil)
		return
	}
	c.JSON(http.StatusOK, form)
}
