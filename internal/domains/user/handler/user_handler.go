package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio-backend/internal/domains/user/model"
	"devfolio-backend/internal/domains/user/service"
	"devfolio-backend/internal/infrastructure/storage"
	"devfolio-backend/internal/shared/middleware"
	"devfolio-backend/internal/shared/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateMe handles PATCH /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UploadAvatar handles PATCH /users/me/avatar (multipart, field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > storage.MaxUploadSize {
		response.BadRequest(c, storage.ErrFileTooLarge.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "failed to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "failed to read file")
		return
	}

	profile, err := h.service.UploadAvatar(c.Request.Context(), userID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// SendWorkEmailCode handles POST /users/me/send-work-email-code
func (h *UserHandler) SendWorkEmailCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.SendWorkEmailCode(c.Request.Context(), userID); err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "verification code sent"})
}

// VerifyWorkEmail handles POST /users/me/verify-work-email
func (h *UserHandler) VerifyWorkEmail(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.service.VerifyWorkEmail(c.Request.Context(), userID, req.Code)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// GetPublicProfile handles GET /users/:username
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.service.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ListDevelopers handles GET /users/developers
func (h *UserHandler) ListDevelopers(c *gin.Context) {
	search := c.Query("search")

	developers, err := h.service.ListDevelopers(c.Request.Context(), search)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	if developers == nil {
		developers = []*model.DeveloperListing{}
	}

	response.Success(c, http.StatusOK, developers)
}
