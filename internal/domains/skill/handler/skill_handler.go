package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio-backend/internal/domains/skill/model"
	"devfolio-backend/internal/domains/skill/service"
	"devfolio-backend/internal/shared/response"
)

type SkillHandler struct {
	service service.SkillService
}

func NewSkillHandler(service service.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

// List handles GET /skills
func (h *SkillHandler) List(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")

	skills, err := h.service.List(c.Request.Context(), search, category)
	if err != nil {
		response.InternalServerError(c, "Failed to list skills")
		return
	}

	if skills == nil {
		skills = []*model.Skill{}
	}

	response.Success(c, http.StatusOK, skills)
}
