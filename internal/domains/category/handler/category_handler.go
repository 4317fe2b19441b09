package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"samplemarine-backend/internal/domains/category/service"
	"samplemarine-backend/internal/shared/response"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List always answers 200. A storage failure behind the service yields an
// empty array, not an error, so dependent forms keep working.
func (h *CategoryHandler) List(c *gin.Context) {
	categories := h.service.List(c.Request.Context())
	response.Success(c, http.StatusOK, "", categories)
}
