package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/pipeline"
	"samplemarine-backend/internal/shared/response"
	"samplemarine-backend/internal/watermark"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrTooManyImages     = errors.New("product must not have more than 10 images")
	ErrImageTooLarge     = errors.New("image exceeds maximum size (10MB)")
)

var productErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrProductNotFound: {
		Status:  http.StatusNotFound,
		Code:    "PRODUCT_NOT_FOUND",
		Message: "The specified product does not exist",
	},
	ErrSlugAlreadyExists: {
		Status:  http.StatusConflict,
		Code:    "SLUG_EXISTS",
		Message: "A product with a similar title already exists",
	},
	ErrTooManyImages: {
		Status:  http.StatusBadRequest,
		Code:    "TOO_MANY_IMAGES",
		Message: "A product may have at most 10 images",
	},
	ErrImageTooLarge: {
		Status:  http.StatusBadRequest,
		Code:    "IMAGE_TOO_LARGE",
		Message: "Each image must be 10MB or smaller",
	},
}

// HandleProductError maps a service error onto an HTTP response.
// Returns true when err was non-nil and a response has been written.
func HandleProductError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if mapped, ok := productErrorMap[err]; ok {
		response.ErrorResponse(c, mapped.Status, mapped.Code, mapped.Message)
		return true
	}

	var decodeErr *watermark.DecodeError
	if errors.As(err, &decodeErr) {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_IMAGE",
			"One of the uploaded files is not a valid image")
		return true
	}

	var uploadErr *pipeline.UploadError
	if errors.As(err, &uploadErr) {
		log.Warn().Err(err).Msg("image upload failed")
		response.ErrorResponse(c, http.StatusBadGateway, "UPLOAD_FAILED",
			"Image upload failed, no product was created")
		return true
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid product data", validationErrs)
		return true
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled product error")
	response.InternalServerError(c, "internal server error")
	return true
}
