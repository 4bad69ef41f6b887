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

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// goatHandler handles HTTP requests on the livestock roster.
type goatHandler struct {
	goatService   portssvc.GoatSvcFacade
	exportService portssvc.ExportSvc
}

func newGoatHandler(gs portssvc.GoatSvcFacade, es portssvc.ExportSvc) *goatHandler {
	return &goatHandler{goatService: gs, exportService: es}
}

// registerGoatRoutes registers routes related to goats.
func registerGoatRoutes(rg *gin.RouterGroup, goatService portssvc.GoatSvcFacade, exportService portssvc.ExportSvc) {
	h := newGoatHandler(goatService, exportService)

	goats := rg.Group("/goats")
	{
		goats.GET("", h.listGoats)
		goats.POST("", h.createGoat)
		goats.GET("/summary", h.summarizeGoats)
		goats.GET("/export", h.exportGoats)
		goats.GET("/:id", h.getGoat)
		goats.PUT("/:id", h.updateGoat)
		goats.DELETE("/:id", h.deleteGoat)
	}
}

// listGoats godoc
// @Summary List goats
// @Description Returns one page (5 goats) of the roster filtered by barn. The page is clamped into range.
// @Tags goats
// @Produce json
// @Param barn query string false "Barn filter" Enums(all, Timur, Barat) default(all)
// @Param page query int false "1-based page" default(1)
// @Success 200 {object} dto.GoatPageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats [get]
func (h *goatHandler) listGoats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListGoatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListGoats", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := listGoatPage(c, h.goatService, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list goats", nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

// listGoatPage is shared by the API list and the roster view.
func listGoatPage(c *gin.Context, goats portssvc.GoatReaderSvc, params dto.ListGoatsParams) (dto.GoatPageResponse, error) {
	barn := params.BarnOrAll()
	all, err := goats.ListGoats(c.Request.Context(), barn)
	if err != nil {
		return dto.GoatPageResponse{}, err
	}
	return dto.ToGoatPageResponse(barn, domain.Paginate(all, params.Page, domain.GoatPageSize)), nil
}

// getGoat godoc
// @Summary Get a goat by ID
// @Tags goats
// @Produce json
// @Param id path string true "Goat ID"
// @Success 200 {object} dto.GoatResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats/{id} [get]
func (h *goatHandler) getGoat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goat, err := h.goatService.GetGoatByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve goat", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToGoatResponse(*goat))
}

// createGoat godoc
// @Summary Add a goat
// @Description Assigns the next ID and appends the goat to the roster.
// @Tags goats
// @Accept json
// @Produce json
// @Param goat body dto.GoatRequest true "Goat details"
// @Success 201 {object} dto.GoatMutationResponse
// @Failure 400 {object} dto.ErrorResponse "Incomplete form"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats [post]
func (h *goatHandler) createGoat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGoat", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Notification: dto.FormIncompleteNotification()})
		return
	}

	goat, err := h.goatService.AddGoat(c.Request.Context(), req.ToFields())
	if err != nil {
		respondError(c, logger, err, "Failed to add goat", formNotification(err))
		return
	}

	logger.Info("Goat added", slog.String("goat_id", goat.ID))
	resp := dto.ToGoatResponse(*goat)
	c.JSON(http.StatusCreated, dto.GoatMutationResponse{Goat: &resp, Notification: dto.GoatAddedNotification(goat.ID)})
}

// updateGoat godoc
// @Summary Update a goat
// @Description Replaces every field of the goat; the ID never changes.
// @Tags goats
// @Accept json
// @Produce json
// @Param id path string true "Goat ID"
// @Param goat body dto.GoatRequest true "Goat details"
// @Success 200 {object} dto.GoatMutationResponse
// @Failure 400 {object} dto.ErrorResponse "Incomplete form"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats/{id} [put]
func (h *goatHandler) updateGoat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req dto.GoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateGoat", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Notification: dto.FormIncompleteNotification()})
		return
	}

	goat, err := h.goatService.UpdateGoat(c.Request.Context(), id, req.ToFields())
	if err != nil {
		respondError(c, logger, err, "Failed to update goat", formNotification(err))
		return
	}

	logger.Info("Goat updated", slog.String("goat_id", goat.ID))
	resp := dto.ToGoatResponse(*goat)
	c.JSON(http.StatusOK, dto.GoatMutationResponse{Goat: &resp, Notification: dto.GoatUpdatedNotification(goat.ID)})
}

// deleteGoat godoc
// @Summary Delete a goat
// @Tags goats
// @Produce json
// @Param id path string true "Goat ID"
// @Success 200 {object} dto.GoatMutationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats/{id} [delete]
func (h *goatHandler) deleteGoat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	if err := h.goatService.DeleteGoat(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete goat", nil)
		return
	}
	logger.Info("Goat deleted", slog.String("goat_id", id))
	c.JSON(http.StatusOK, dto.GoatMutationResponse{Notification: dto.GoatDeletedNotification(id)})
}

// summarizeGoats godoc
// @Summary Roster KPIs
// @Description Counts goats in total, per barn and per health status.
// @Tags goats
// @Produce json
// @Success 200 {object} domain.GoatSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats/summary [get]
func (h *goatHandler) summarizeGoats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.goatService.SummarizeGoats(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to summarize goats", nil)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// exportGoats godoc
// @Summary Export the roster
// @Description Downloads the barn-filtered roster as an XLSX workbook.
// @Tags goats
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param barn query string false "Barn filter" Enums(all, Timur, Barat) default(all)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /goats/export [get]
func (h *goatHandler) exportGoats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListGoatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	buf, filename, err := h.exportService.ExportGoatsXLSX(c.Request.Context(), params.BarnOrAll())
	if err != nil {
		respondError(c, logger, err, "Failed to export goats", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// formNotification attaches the incomplete-form toast to validation failures.
func formNotification(err error) *dto.Notification {
	if statusForError(err) == http.StatusBadRequest {
		return dto.FormIncompleteNotification()
	}
	return nil
}
