// Package pipeline drives user-selected images through the watermark
// compositor and an object-storage uploader, one asset at a time.
package pipeline

import (
	"context"
	"fmt"

	"samplemarine-backend/internal/watermark"
)

// Uploader is the storage capability the coordinator needs: accept a blob,
// return a durable URL. MinIO and Cloudinary both satisfy it.
type Uploader interface {
	Upload(ctx context.Context, data []byte, name, contentType, folder string) (string, error)
}

// UploadError wraps a network/storage failure from the uploader.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// UploadResult pairs an asset with the URL storage assigned to it.
type UploadResult struct {
	Name string
	URL  string
}

// ProcessAndUpload watermarks and uploads each asset strictly in input order,
// fully completing one before starting the next. Sequential processing is a
// deliberate memory/network-pressure bound, not an optimization target.
//
// The batch is all-or-nothing: the first failure aborts it, partial results
// are discarded and the failing asset's error is returned (DecodeError,
// EncodeError or UploadError). Nothing is retried; the caller re-invokes the
// whole operation if it wants another attempt. An empty batch returns an empty
// slice without touching the uploader.
func ProcessAndUpload(ctx context.Context, assets []*Asset, spec watermark.Spec, uploader Uploader, folder string) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(assets))

	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			asset.setStatus(StatusFailed)
			return nil, err
		}

		asset.setStatus(StatusWatermarking)
		stamped, err := watermark.Apply(asset.Data, spec)
		if err != nil {
			asset.setStatus(StatusFailed)
			return nil, err
		}

		asset.setStatus(StatusUploading)
		name := watermark.OutputName(asset.Name)
		url, err := uploader.Upload(ctx, stamped, name, "image/jpeg", folder)
		if err != nil {
			asset.setStatus(StatusFailed)
			return nil, &UploadError{Name: name, Err: err}
		}

		asset.setStatus(StatusDone)
		results = append(results, UploadResult{Name: name, URL: url})
	}

	return results, nil
}
