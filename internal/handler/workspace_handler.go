package handler

import (
	"net/http"

	"tradebooks/internal/service"
	"tradebooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	backupService    service.BackupService
	dashboardService service.DashboardService
}

func NewWorkspaceHandler(backupService service.BackupService, dashboardService service.DashboardService) *WorkspaceHandler {
	return &WorkspaceHandler{backupService: backupService, dashboardService: dashboardService}
}

func (h *WorkspaceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/workspace", h.GetWorkspace)
	router.GET("/api/dashboard", h.GetDashboard)
}

// GetWorkspace returns the full dataset the client loads on startup
// @Summary      Workspace snapshot
// @Description  Returns every list plus the business profile in one payload; after the initial load the client refetches individual lists on refresh events
// @Tags         workspace
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.WorkspaceResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/workspace [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspace, err := h.backupService.Workspace(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, workspace))
}

// GetDashboard returns the aggregated home-screen figures
// @Summary      Dashboard summary
// @Tags         workspace
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardSummary}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *WorkspaceHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
