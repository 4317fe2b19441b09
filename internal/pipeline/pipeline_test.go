package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplemarine-backend/internal/watermark"
)

// fakeUploader records calls and fails on demand.
type fakeUploader struct {
	calls  []string
	failOn int // 1-based call index to fail at, 0 = never
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, name, contentType, folder string) (string, error) {
	f.calls = append(f.calls, name)
	if f.failOn > 0 && len(f.calls) == f.failOn {
		return "", fmt.Errorf("connection reset")
	}
	return "https://cdn.example.com/" + folder + "/" + name, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestProcessAndUpload_EmptyBatch(t *testing.T) {
	up := &fakeUploader{}

	results, err := ProcessAndUpload(context.Background(), nil, watermark.DefaultSpec("x"), up, "products")

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, up.calls, "empty batch must not touch the uploader")
}

func TestProcessAndUpload_PreservesInputOrder(t *testing.T) {
	data := pngBytes(t)
	assets := []*Asset{
		NewAsset("first.png", "image/png", data),
		NewAsset("second.png", "image/png", data),
		NewAsset("third.png", "image/png", data),
	}
	up := &fakeUploader{}

	results, err := ProcessAndUpload(context.Background(), assets, watermark.DefaultSpec("x"), up, "products")

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first.jpg", results[0].Name)
	assert.Equal(t, "second.jpg", results[1].Name)
	assert.Equal(t, "third.jpg", results[2].Name)
	assert.Equal(t, []string{"first.jpg", "second.jpg", "third.jpg"}, up.calls)

	for _, a := range assets {
		assert.Equal(t, StatusDone, a.Status)
	}
}

func TestProcessAndUpload_AbortsOnUploadFailure(t *testing.T) {
	data := pngBytes(t)
	assets := []*Asset{
		NewAsset("a.png", "image/png", data),
		NewAsset("b.png", "image/png", data),
		NewAsset("c.png", "image/png", data),
	}
	up := &fakeUploader{failOn: 2}

	results, err := ProcessAndUpload(context.Background(), assets, watermark.DefaultSpec("x"), up, "products")

	require.Error(t, err)
	var uploadErr *UploadError
	assert.True(t, errors.As(err, &uploadErr))
	assert.Nil(t, results, "partial results are discarded")
	// The asset after the failure was never started.
	assert.Len(t, up.calls, 2)
	assert.Equal(t, StatusFailed, assets[1].Status)
	assert.Equal(t, StatusPending, assets[2].Status)
}

func TestProcessAndUpload_AbortsOnDecodeFailure(t *testing.T) {
	assets := []*Asset{
		NewAsset("broken.png", "image/png", []byte("not an image")),
		NewAsset("ok.png", "image/png", pngBytes(t)),
	}
	up := &fakeUploader{}

	results, err := ProcessAndUpload(context.Background(), assets, watermark.DefaultSpec("x"), up, "products")

	require.Error(t, err)
	var decodeErr *watermark.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Nil(t, results)
	assert.Empty(t, up.calls, "nothing is uploaded when the first asset fails to decode")
	assert.Equal(t, StatusFailed, assets[0].Status)
	assert.Equal(t, StatusPending, assets[1].Status)
}

func TestProcessAndUpload_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assets := []*Asset{NewAsset("a.png", "image/png", pngBytes(t))}
	up := &fakeUploader{}

	_, err := ProcessAndUpload(ctx, assets, watermark.DefaultSpec("x"), up, "products")

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, up.calls)
}
