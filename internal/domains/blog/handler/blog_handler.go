package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"samplemarine-backend/internal/domains/blog/model"
	"samplemarine-backend/internal/domains/blog/service"
	"samplemarine-backend/internal/shared/response"
)

type BlogHandler struct {
	service service.BlogService
}

func NewBlogHandler(svc service.BlogService) *BlogHandler {
	return &BlogHandler{service: svc}
}

func (h *BlogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(c, "failed to list blog posts")
		return
	}

	response.Success(c, http.StatusOK, "", posts)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req model.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Invalid blog post", validationErrs)
			return
		}
		response.InternalServerError(c, "failed to create blog post")
		return
	}

	response.Success(c, http.StatusCreated, "blog post created", post)
}
