package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ImageRemover deletes a stored object given the URL Upload returned for it.
// MinIO satisfies it; the Cloudinary backend does not (unsigned presets
// cannot delete), in which case the handler runs with a nil remover.
type ImageRemover interface {
	RemoveByURL(ctx context.Context, url string) error
}

type DeleteImagesPayload struct {
	ProductID string   `json:"product_id"`
	URLs      []string `json:"urls"`
}

type DeleteImagesHandler struct {
	remover ImageRemover
}

func NewDeleteImagesHandler(remover ImageRemover) *DeleteImagesHandler {
	return &DeleteImagesHandler{remover: remover}
}

// ProcessTask removes the deleted product's images from object storage.
// Individual removal failures fail the task so asynq retries it; objects
// already gone are not an error.
func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DeleteImagesPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal delete images payload: %v: %w", err, asynq.SkipRetry)
	}

	if h.remover == nil {
		log.Warn().Str("product_id", payload.ProductID).
			Msg("no image remover configured, skipping storage cleanup")
		return nil
	}

	for _, u := range payload.URLs {
		if err := h.remover.RemoveByURL(ctx, u); err != nil {
			return fmt.Errorf("cleanup product %s: %w", payload.ProductID, err)
		}
	}

	log.Info().Str("product_id", payload.ProductID).Int("count", len(payload.URLs)).
		Msg("product images removed from storage")
	return nil
}
