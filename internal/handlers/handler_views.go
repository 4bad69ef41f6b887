package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/dto"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recentCheckins is how many entries the dashboard history shows.
const recentCheckins = 5

// viewHandler serves the page models of the dashboard frontend.
type viewHandler struct {
	services   *portssvc.ServiceContainer
	cookieName string
}

func newViewHandler(services *portssvc.ServiceContainer, cookieName string) *viewHandler {
	return &viewHandler{services: services, cookieName: cookieName}
}

// registerViewRoutes registers the login page and the gated pages.
func registerViewRoutes(r *gin.Engine, services *portssvc.ServiceContainer, cookieName string) {
	h := newViewHandler(services, cookieName)

	r.GET(middleware.LoginPath, h.loginView)

	views := r.Group("", middleware.ViewAuthMiddleware(services.Auth, cookieName))
	{
		views.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
		views.GET("/dashboard", h.dashboardView)
		views.GET("/daftar-peternakan", h.rosterView)
		views.GET("/jadwal", h.scheduleView)
	}
}

func sessionOrEmpty(c *gin.Context) dto.SessionResponse {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return dto.SessionResponse{DisplayName: "User", PhotoURL: domain.DefaultPhotoURL}
	}
	return dto.ToSessionResponse(session)
}

// loginView godoc
// @Summary Login page
// @Description Redirects to / when already signed in.
// @Tags views
// @Produce json
// @Success 200 {object} dto.LoginViewResponse
// @Success 302
// @Router /login [get]
func (h *viewHandler) loginView(c *gin.Context) {
	if token := middleware.TokenFromRequest(c, h.cookieName); token != "" {
		if _, err := h.services.Auth.Authorize(c.Request.Context(), token); err == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	c.JSON(http.StatusOK, dto.LoginViewResponse{View: dto.ViewLogin})
}

// dashboardView godoc
// @Summary Dashboard page
// @Description Greeting, roster KPIs, today's check-in status and recent history.
// @Tags views
// @Produce json
// @Success 200 {object} dto.DashboardViewResponse
// @Success 302 "Redirect to /login"
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (h *viewHandler) dashboardView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	summary, err := h.services.Goat.SummarizeGoats(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to load dashboard", nil)
		return
	}
	today := domain.DateKey(h.services.Calendar.Today())
	submitted, err := h.services.Checkin.HasCheckinForDate(ctx, today)
	if err != nil {
		respondError(c, logger, err, "Failed to load dashboard", nil)
		return
	}
	entries, err := h.services.Checkin.ListCheckins(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to load dashboard", nil)
		return
	}
	if len(entries) > recentCheckins {
		entries = entries[:recentCheckins]
	}

	user := sessionOrEmpty(c)
	c.JSON(http.StatusOK, dto.DashboardViewResponse{
		View:           dto.ViewDashboard,
		Greeting:       "Halo, " + user.DisplayName + "!",
		User:           user,
		Summary:        *summary,
		Today:          today,
		TodaySubmitted: submitted,
		Recent:         dto.ToListCheckinsResponse(entries).Checkins,
	})
}

// rosterView godoc
// @Summary Livestock page
// @Tags views
// @Produce json
// @Param barn query string false "Barn filter" Enums(all, Timur, Barat) default(all)
// @Param page query int false "1-based page" default(1)
// @Success 200 {object} dto.RosterViewResponse
// @Success 302 "Redirect to /login"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /daftar-peternakan [get]
func (h *viewHandler) rosterView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListGoatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for roster view", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	page, err := listGoatPage(c, h.services.Goat, params)
	if err != nil {
		respondError(c, logger, err, "Failed to load roster", nil)
		return
	}
	c.JSON(http.StatusOK, dto.RosterViewResponse{View: dto.ViewRoster, User: sessionOrEmpty(c), Goats: page})
}

// scheduleView godoc
// @Summary Schedule page
// @Description Month grid plus the editor of the selected day (today by default).
// @Tags views
// @Produce json
// @Param month query string false "Month as YYYY-MM"
// @Param nav query string false "Step from month" Enums(prev, next, today)
// @Param date query string false "Selected day as YYYY-MM-DD"
// @Success 200 {object} dto.ScheduleViewResponse
// @Success 302 "Redirect to /login"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jadwal [get]
func (h *viewHandler) scheduleView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()
	var params dto.CalendarParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	m, err := resolveMonth(h.services.Calendar, params)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve month", nil)
		return
	}
	grid, err := h.services.Calendar.MonthGrid(ctx, m)
	if err != nil {
		respondError(c, logger, err, "Failed to build month grid", nil)
		return
	}
	date := c.Query("date")
	if date == "" {
		date = domain.DateKey(h.services.Calendar.Today())
	}
	form, err := h.services.Calendar.SelectDay(ctx, date)
	if err != nil {
		respondError(c, logger, err, "Failed to load day", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ScheduleViewResponse{View: dto.ViewSchedule, User: sessionOrEmpty(c), Grid: grid, Selected: form})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NotFoundResponse{View: dto.ViewNotFound, Error: "Page not found"})
}
