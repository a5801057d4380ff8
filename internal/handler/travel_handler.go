package handler

import (
	"net/http"

	"tradebooks/internal/service"
	"tradebooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type TravelHandler struct {
	travelService service.TravelLogService
}

func NewTravelHandler(travelService service.TravelLogService) *TravelHandler {
	return &TravelHandler{travelService: travelService}
}

func (h *TravelHandler) RegisterRoutes(router *gin.RouterGroup) {
	travel := router.Group("/api/travel-logs")
	{
		travel.GET("", h.ListTravelLogs)
		travel.POST("", h.SaveTravelLog)
		travel.PUT("/:id", h.SaveTravelLog)
		travel.DELETE("/:id", h.DeleteTravelLog)
	}
}

// ListTravelLogs returns every travel log with its derived deduction
// @Summary      List travel logs
// @Tags         travel
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.TravelLogResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/travel-logs [get]
func (h *TravelHandler) ListTravelLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, err := h.travelService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, logs))
}

// SaveTravelLog creates or updates a travel log
// @Summary      Save travel log
// @Tags         travel
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveTravelLogRequest  true  "Travel Log Payload"
// @Success      200      {object}  response.Response{data=service.TravelLogResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/travel-logs [post]
func (h *TravelHandler) SaveTravelLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.SaveTravelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	log, err := h.travelService.Save(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, log))
}

// DeleteTravelLog removes a travel log
// @Summary      Delete travel log
// @Tags         travel
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Travel Log ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/travel-logs/{id} [delete]
func (h *TravelHandler) DeleteTravelLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.travelService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "travel log deleted"}))
}
