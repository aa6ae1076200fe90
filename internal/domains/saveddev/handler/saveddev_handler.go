package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"devfolio-backend/internal/domains/saveddev/model"
	"devfolio-backend/internal/domains/saveddev/service"
	"devfolio-backend/internal/shared/middleware"
	"devfolio-backend/internal/shared/response"
)

type SavedDevHandler struct {
	service service.SavedDevService
}

func NewSavedDevHandler(service service.SavedDevService) *SavedDevHandler {
	return &SavedDevHandler{service: service}
}

// Save handles POST /saved-developers/:developerId
func (h *SavedDevHandler) Save(c *gin.Context) {
	recruiterID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	developerID, err := uuid.Parse(c.Param("developerId"))
	if err != nil {
		response.BadRequest(c, "invalid developer id")
		return
	}

	saved, err := h.service.Save(c.Request.Context(), recruiterID, developerID)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusCreated, saved)
}

// Unsave handles DELETE /saved-developers/:developerId
func (h *SavedDevHandler) Unsave(c *gin.Context) {
	recruiterID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	developerID, err := uuid.Parse(c.Param("developerId"))
	if err != nil {
		response.BadRequest(c, "invalid developer id")
		return
	}

	if err := h.service.Unsave(c.Request.Context(), recruiterID, developerID); err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "developer unsaved"})
}

// List handles GET /saved-developers
func (h *SavedDevHandler) List(c *gin.Context) {
	recruiterID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	saved, err := h.service.FindAllByRecruiter(c.Request.Context(), recruiterID)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	if saved == nil {
		saved = []*model.SavedDeveloper{}
	}

	response.Success(c, http.StatusOK, saved)
}

// Status handles GET /saved-developers/:developerId/status
func (h *SavedDevHandler) Status(c *gin.Context) {
	recruiterID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	developerID, err := uuid.Parse(c.Param("developerId"))
	if err != nil {
		response.BadRequest(c, "invalid developer id")
		return
	}

	isSaved, err := h.service.IsSaved(c.Request.Context(), recruiterID, developerID)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, model.SavedStatusResponse{IsSaved: isSaved})
}
