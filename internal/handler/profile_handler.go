package handler

import (
	"net/http"

	"tradebooks/internal/service"
	"tradebooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.BusinessProfileService
}

func NewProfileHandler(profileService service.BusinessProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/api/business-profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.SetProfile)
	}
}

// GetProfile returns the business profile, empty if never saved
// @Summary      Get business profile
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.BusinessProfile}
// @Failure      500  {object}  response.Response
// @Router       /api/business-profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// SetProfile replaces the business profile wholesale
// @Summary      Save business profile
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BusinessProfileRequest  true  "Business Profile Payload"
// @Success      200      {object}  response.Response{data=model.BusinessProfile}
// @Failure      400      {object}  response.Response
// @Router       /api/business-profile [put]
func (h *ProfileHandler) SetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	profile, err := h.profileService.Set(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}
