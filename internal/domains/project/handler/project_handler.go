package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"devfolio-backend/internal/domains/project/model"
	"devfolio-backend/internal/domains/project/service"
	"devfolio-backend/internal/infrastructure/storage"
	"devfolio-backend/internal/shared/middleware"
	"devfolio-backend/internal/shared/response"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	project, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusCreated, project)
}

// List handles GET /projects (the requester's own projects)
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	projects, err := h.service.FindAllByOwner(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	if projects == nil {
		projects = []*model.Project{}
	}

	response.Success(c, http.StatusOK, projects)
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// GetPublic handles GET /projects/public/:username/:slug
func (h *ProjectHandler) GetPublic(c *gin.Context) {
	project, err := h.service.FindPublicBySlug(c.Request.Context(), c.Param("username"), c.Param("slug"))
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// Update handles PATCH /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req model.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	project, err := h.service.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// Delete handles DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id, userID); err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "project deleted"})
}

// Publish handles PATCH /projects/:id/publish
func (h *ProjectHandler) Publish(c *gin.Context) {
	h.transition(c, h.service.Publish)
}

// Unpublish handles PATCH /projects/:id/unpublish
func (h *ProjectHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.service.Unpublish)
}

func (h *ProjectHandler) transition(c *gin.Context, fn func(ctx context.Context, id, requesterID uuid.UUID) (*model.Project, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := fn(c.Request.Context(), id, userID)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// AddImage handles POST /projects/:id/images (multipart, field "file")
func (h *ProjectHandler) AddImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
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

	req := model.AddImageRequest{}
	if caption := c.PostForm("caption"); caption != "" {
		req.Caption = &caption
	}
	if raw := c.PostForm("sort_order"); raw != "" {
		sortOrder, err := strconv.Atoi(raw)
		if err != nil || sortOrder < 0 {
			response.BadRequest(c, "sort_order must be a non-negative integer")
			return
		}
		req.SortOrder = &sortOrder
	}

	image, err := h.service.AddImage(c.Request.Context(), id, userID, data, fileHeader.Header.Get("Content-Type"), &req)
	if err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusCreated, image)
}

// RemoveImage handles DELETE /projects/:id/images/:imageId
func (h *ProjectHandler) RemoveImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	if err := h.service.RemoveImage(c.Request.Context(), id, imageID, userID); err != nil {
		status, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "image deleted"})
}
