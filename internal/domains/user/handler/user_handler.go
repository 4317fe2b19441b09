package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"samplemarine-backend/internal/domains/user/model"
	"samplemarine-backend/internal/domains/user/service"
	"samplemarine-backend/internal/shared/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Invalid login data", validationErrs)
			return
		}
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.InternalServerError(c, "login failed")
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout exists for the client's session teardown. Tokens are stateless, so
// there is nothing to revoke server-side; clients drop the token.
func (h *UserHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, "logged out", nil)
}
