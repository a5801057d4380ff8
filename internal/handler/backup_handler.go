package handler

import (
	"fmt"
	"net/http"
	"time"

	"tradebooks/internal/service"
	"tradebooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	backupService service.BackupService
}

func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	backup := router.Group("/api/backup")
	{
		backup.GET("/export", h.Export)
		backup.GET("/export/csv/:entity", h.ExportCSV)
		backup.POST("/import", h.Import)
	}
}

// Export returns the full account dataset as a versioned JSON backup
// @Summary      Export backup
// @Description  Dumps every record plus the number counters as a downloadable JSON file
// @Tags         backup
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.ExportPayload
// @Failure      500  {object}  response.Response
// @Router       /api/backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, err := h.backupService.Export(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(http.StatusOK, payload)
}

// ExportCSV returns one entity list as a CSV download
// @Summary      Export entity CSV
// @Tags         backup
// @Security     BearerAuth
// @Produce      text/csv
// @Param        entity  path  string  true  "Entity (invoices, quotes, expenses, travel-logs, job-notes, contacts)"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /api/backup/export/csv/{entity} [get]
func (h *BackupHandler) ExportCSV(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filename, content, err := h.backupService.ExportCSV(c.Request.Context(), userID, c.Param("entity"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// Import merges a backup file into the account
// @Summary      Import backup
// @Description  Upserts every record from the backup under the importing account and overwrites the counters verbatim. The whole import is one transaction.
// @Tags         backup
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ImportRequest  true  "Backup Payload"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /api/backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid backup payload: "+err.Error()))
		return
	}

	result, err := h.backupService.Import(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
