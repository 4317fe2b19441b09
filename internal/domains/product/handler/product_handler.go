package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"samplemarine-backend/internal/domains/product/model"
	"samplemarine-backend/internal/domains/product/service"
	"samplemarine-backend/internal/shared/response"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// Create handles the admin product form: multipart with scalar fields plus
// file parts `image` (hero, optional) and `images` (gallery, ordered).
func (h *ProductHandler) Create(c *gin.Context) {
	// 1. Bind scalar fields.
	var req model.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid form data")
		return
	}

	// 2. Pull file parts off the multipart form.
	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		response.BadRequest(c, "invalid multipart form")
		return
	}

	var hero *service.ImageUpload
	var gallery []service.ImageUpload
	if form != nil {
		if files := form.File["image"]; len(files) > 0 {
			img, err := readUpload(files[0])
			if err != nil {
				response.BadRequest(c, "failed to read hero image")
				return
			}
			hero = img
		}
		for _, fh := range form.File["images"] {
			img, err := readUpload(fh)
			if err != nil {
				response.BadRequest(c, fmt.Sprintf("failed to read image %q", fh.Filename))
				return
			}
			gallery = append(gallery, *img)
		}
	}

	// 3. Run the submission.
	sub := service.NewSubmission(req, hero, gallery)
	product, err := h.service.Create(c.Request.Context(), sub)
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, "product created", product)
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := model.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "", list)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "", product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHandler) DashboardStats(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "", stats)
}

// Export streams the catalog as an xlsx download.
func (h *ProductHandler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if model.HandleProductError(c, err) {
		return
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func readUpload(fh *multipart.FileHeader) (*service.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.ImageUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
