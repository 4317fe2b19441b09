package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"samplemarine-backend/internal/domains/contact/model"
	"samplemarine-backend/internal/domains/contact/service"
	"samplemarine-backend/internal/shared/response"
)

type ContactHandler struct {
	service service.ContactService
}

func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Invalid contact data", validationErrs)
			return
		}
		response.InternalServerError(c, "failed to submit contact message")
		return
	}

	response.Success(c, http.StatusCreated, "message received", msg)
}

// List is the admin inbox view.
func (h *ContactHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(c, "failed to list contact messages")
		return
	}

	response.Success(c, http.StatusOK, "", messages)
}
