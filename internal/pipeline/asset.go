package pipeline

// Status tracks an asset through its watermark/upload lifecycle.
type Status string

const (
	StatusPending      Status = "pending"
	StatusWatermarking Status = "watermarking"
	StatusUploading    Status = "uploading"
	StatusDone         Status = "done"
	StatusFailed       Status = "failed"
)

// Asset is one user-selected image awaiting processing. The raw bytes live in
// memory for the duration of the batch; previews are owned by whatever UI
// selected the file and never reach this layer.
type Asset struct {
	Name        string
	ContentType string
	Data        []byte
	Status      Status

	// OnStatus, when set, observes every status change. Callers use it to
	// surface batch progress without polling.
	OnStatus func(Status)
}

// NewAsset wraps raw upload bytes in a pending asset.
func NewAsset(name, contentType string, data []byte) *Asset {
	return &Asset{
		Name:        name,
		ContentType: contentType,
		Data:        data,
		Status:      StatusPending,
	}
}

func (a *Asset) setStatus(s Status) {
	a.Status = s
	if a.OnStatus != nil {
		a.OnStatus(s)
	}
}
