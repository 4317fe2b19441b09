package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplemarine-backend/internal/domains/product/model"
	"samplemarine-backend/internal/pipeline"
	"samplemarine-backend/internal/watermark"
)

type mockRepo struct {
	created    *model.Product
	createErr  error
	products   []*model.Product
	countCalls int
}

func (m *mockRepo) Create(_ context.Context, p *model.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	for _, p := range m.products {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (m *mockRepo) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	return nil, model.ErrProductNotFound
}

func (m *mockRepo) List(_ context.Context, _ model.ProductFilter) ([]*model.Product, int64, error) {
	return m.products, int64(len(m.products)), nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error { return nil }

func (m *mockRepo) CountProducts(_ context.Context) (int64, error) {
	m.countCalls++
	return int64(len(m.products)), nil
}

func (m *mockRepo) CountFeatured(_ context.Context) (int64, error)       { return 0, nil }
func (m *mockRepo) CountDistinctBrands(_ context.Context) (int64, error) { return 0, nil }

type fakeUploader struct {
	calls  []string
	failOn int // 1-based call index that fails; 0 = never
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte, name, _, folder string) (string, error) {
	f.calls = append(f.calls, name)
	if f.failOn > 0 && len(f.calls) == f.failOn {
		return "", errors.New("connection reset")
	}
	return "https://cdn.example.com/" + folder + "/" + name, nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, _ string) error { return nil }
func (c *memCache) Ping(_ context.Context) error                    { return nil }

type fixedCounter int64

func (f fixedCounter) Count(_ context.Context) (int64, error) { return int64(f), nil }

func newTestService(repo *mockRepo, uploader pipeline.Uploader) ProductService {
	return NewProductService(
		repo,
		fixedCounter(4),
		fixedCounter(2),
		uploader,
		newMemCache(),
		nil,
		watermark.DefaultSpec("Sample Marine"),
		"sample-marine",
	)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func upload(t *testing.T, name string, w, h int) ImageUpload {
	return ImageUpload{Name: name, ContentType: "image/png", Data: pngBytes(t, w, h)}
}

func TestCreate_EmptyTitleNeverTouchesPipeline(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	hero := upload(t, "hero.png", 40, 30)
	sub := NewSubmission(model.CreateProductRequest{
		Title:       "",
		Description: "High-pressure fuel pump",
		Category:    "engines",
	}, &hero, nil)

	product, err := svc.Create(context.Background(), sub)

	require.Error(t, err)
	assert.Nil(t, product)
	assert.Empty(t, up.calls)
	assert.Nil(t, repo.created)
	assert.Equal(t, StateIdle, sub.State())
	assert.Contains(t, sub.History(), StateValidating)
	assert.NotContains(t, sub.History(), StateWatermarking)
}

func TestCreate_EmptyDescriptionNeverTouchesPipeline(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	hero := upload(t, "hero.png", 40, 30)
	sub := NewSubmission(model.CreateProductRequest{
		Title:    "Fuel Pump",
		Category: "engines",
	}, &hero, nil)

	product, err := svc.Create(context.Background(), sub)

	require.Error(t, err)
	var validationErrs validation.Errors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs, "Description")

	assert.Nil(t, product)
	assert.Empty(t, up.calls)
	assert.Nil(t, repo.created)
	assert.Equal(t, StateIdle, sub.State())
}

func TestCreate_NoImagesCreatesImagelessProduct(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	sub := NewSubmission(model.CreateProductRequest{
		Title:       "Fuel Pump",
		Description: "High-pressure fuel pump for inboard engines",
		Category:    "engines",
	}, nil, nil)

	product, err := svc.Create(context.Background(), sub)

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Empty(t, product.Image)
	assert.Empty(t, product.Images)
	assert.Empty(t, up.calls)
	assert.Equal(t, product, repo.created)
	assert.Equal(t, StateSuccess, sub.State())
}

func TestCreate_HeroAndGalleryPreserveOrder(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	hero := upload(t, "hero.png", 40, 30)
	gallery := []ImageUpload{
		upload(t, "first.png", 40, 30),
		upload(t, "second.png", 40, 30),
	}
	sub := NewSubmission(model.CreateProductRequest{
		Title:       "Marine Fuel Pump",
		Description: "12V electric fuel pump for marine diesel engines",
		Category:    "engines",
		Price:       "199.90",
	}, &hero, gallery)

	product, err := svc.Create(context.Background(), sub)

	require.NoError(t, err)
	require.NotNil(t, product)

	// Gallery is uploaded first, in selection order, then the hero.
	require.Equal(t, []string{"first.jpg", "second.jpg", "hero.jpg"}, up.calls)

	assert.Equal(t, "https://cdn.example.com/sample-marine/hero.jpg", product.Image)
	require.Len(t, product.Images, 2)
	assert.Equal(t, "https://cdn.example.com/sample-marine/first.jpg", product.Images[0])
	assert.Equal(t, "https://cdn.example.com/sample-marine/second.jpg", product.Images[1])

	assert.Equal(t, "marine-fuel-pump", product.Slug)
	assert.Equal(t, product, repo.created)
	assert.Equal(t, StateSuccess, sub.State())

	history := sub.History()
	assert.Equal(t, StateIdle, history[0])
	assert.Contains(t, history, StateWatermarking)
	assert.Contains(t, history, StateUploading)
	assert.Contains(t, history, StateSubmitting)
	assert.Equal(t, StateSuccess, history[len(history)-1])
}

func TestCreate_GalleryOnlyPromotesFirstImageToHero(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	gallery := []ImageUpload{upload(t, "only.png", 40, 30)}
	sub := NewSubmission(model.CreateProductRequest{
		Title:       "Impeller Kit",
		Description: "Replacement impeller kit with gasket",
		Category:    "cooling",
	}, nil, gallery)

	product, err := svc.Create(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/sample-marine/only.jpg", product.Image)
}

func TestCreate_UploadFailurePersistsNothing(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{failOn: 2}
	svc := newTestService(repo, up)

	gallery := []ImageUpload{
		upload(t, "first.png", 40, 30),
		upload(t, "second.png", 40, 30),
	}
	sub := NewSubmission(model.CreateProductRequest{
		Title:       "Gasket Set",
		Description: "Full engine gasket set",
		Category:    "engines",
	}, nil, gallery)

	product, err := svc.Create(context.Background(), sub)

	require.Error(t, err)
	var upErr *pipeline.UploadError
	assert.ErrorAs(t, err, &upErr)
	assert.Nil(t, product)
	assert.Nil(t, repo.created)
	assert.Equal(t, StateError, sub.State())
	assert.Len(t, up.calls, 2)
}

func TestCreate_BadImageBytesFailDecode(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	gallery := []ImageUpload{{Name: "broken.png", ContentType: "image/png", Data: []byte("not an image")}}
	sub := NewSubmission(model.CreateProductRequest{
		Title:       "Anode Set",
		Description: "Zinc anode set for hull protection",
		Category:    "hull",
	}, nil, gallery)

	_, err := svc.Create(context.Background(), sub)

	var decErr *watermark.DecodeError
	assert.ErrorAs(t, err, &decErr)
	assert.Empty(t, up.calls)
	assert.Nil(t, repo.created)
	assert.Equal(t, StateError, sub.State())
}

func TestCreate_OversizedImageRejected(t *testing.T) {
	repo := &mockRepo{}
	up := &fakeUploader{}
	svc := newTestService(repo, up)

	big := ImageUpload{Name: "big.png", ContentType: "image/png", Data: make([]byte, maxImageBytes+1)}
	sub := NewSubmission(model.CreateProductRequest{
		Title:       "Prop Shaft",
		Description: "Stainless steel propeller shaft",
		Category:    "drive",
	}, &big, nil)

	_, err := svc.Create(context.Background(), sub)

	assert.ErrorIs(t, err, model.ErrImageTooLarge)
	assert.Empty(t, up.calls)
}

func TestGetDashboardStats_SecondCallServedFromCache(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, &fakeUploader{})

	first, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), first.TotalCategories)
	assert.Equal(t, int64(2), first.TotalBlogPosts)
	require.Equal(t, 1, repo.countCalls)

	second, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.countCalls)
}
