package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/dto"
	"github.com/SscSPs/karangnongko_farm/internal/metrics"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/gin-gonic/gin"
)

const icsContentType = "text/calendar; charset=utf-8"

type checkinHandler struct {
	checkinService  portssvc.CheckinSvcFacade
	calendarService portssvc.CalendarSvc
	exportService   portssvc.ExportSvc
}

func newCheckinHandler(cs portssvc.CheckinSvcFacade, cal portssvc.CalendarSvc, es portssvc.ExportSvc) *checkinHandler {
	return &checkinHandler{checkinService: cs, calendarService: cal, exportService: es}
}

// registerCheckinRoutes registers routes of the daily journal.
func registerCheckinRoutes(rg *gin.RouterGroup, cs portssvc.CheckinSvcFacade, cal portssvc.CalendarSvc, es portssvc.ExportSvc) {
	h := newCheckinHandler(cs, cal, es)

	checkins := rg.Group("/checkins")
	{
		checkins.GET("", h.listCheckins)
		checkins.POST("", h.submitCheckin)
		checkins.GET("/export", h.exportCheckins)
		checkins.GET("/:date", h.getCheckin)
	}
}

// listCheckins godoc
// @Summary List check-ins
// @Description Returns every journal entry, newest first.
// @Tags checkins
// @Produce json
// @Success 200 {object} dto.ListCheckinsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /checkins [get]
func (h *checkinHandler) listCheckins(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.checkinService.ListCheckins(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list check-ins", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCheckinsResponse(entries))
}

// submitCheckin godoc
// @Summary Submit a check-in
// @Description Records the entry of a day, replacing any entry already stored for it.
// @Tags checkins
// @Accept json
// @Produce json
// @Param checkin body dto.CheckinRequest true "Check-in"
// @Success 200 {object} dto.CheckinSubmitResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /checkins [post]
func (h *checkinHandler) submitCheckin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitCheckin", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	saved, updated, err := h.checkinService.SubmitCheckin(c.Request.Context(), req.ToEntry())
	if err != nil {
		respondError(c, logger, err, "Failed to save check-in", nil)
		return
	}

	if saved.Date == domain.DateKey(h.calendarService.Today()) {
		metrics.CheckinTodaySubmitted.Set(1)
	}

	logger.Info("Check-in saved", slog.String("date", saved.Date), slog.Bool("updated", updated))
	c.JSON(http.StatusOK, dto.CheckinSubmitResponse{
		Entry:        dto.ToCheckinResponse(*saved),
		Updated:      updated,
		Notification: dto.CheckinNotification(saved.Date, updated),
	})
}

// getCheckin godoc
// @Summary Get the check-in of a day
// @Tags checkins
// @Produce json
// @Param date path string true "Day as YYYY-MM-DD"
// @Success 200 {object} dto.CheckinResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /checkins/{date} [get]
func (h *checkinHandler) getCheckin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entry, err := h.checkinService.GetCheckinByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve check-in", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckinResponse(*entry))
}

// exportCheckins godoc
// @Summary Export check-ins
// @Description Downloads the journal as an iCalendar feed of all-day events.
// @Tags checkins
// @Produce text/calendar
// @Success 200 {file} file
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /checkins/export [get]
func (h *checkinHandler) exportCheckins(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	buf, filename, err := h.exportService.ExportCheckinsICS(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to export check-ins", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, icsContentType, buf.Bytes())
}
