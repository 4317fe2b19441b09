package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"samplemarine-backend/internal/config"
)

// CloudinaryStorage uploads through Cloudinary's unsigned upload endpoint.
// The preset and cloud name stay server-side; browsers only ever see the
// resulting secure URL.
type CloudinaryStorage struct {
	uploadURL string
	preset    string
	client    *http.Client
}

func NewCloudinaryStorage(cfg config.CloudinaryConfig) *CloudinaryStorage {
	return &CloudinaryStorage{
		uploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudName),
		preset:    cfg.UploadPreset,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload posts a multipart body {file, upload_preset, folder} and returns the
// secure_url Cloudinary assigns.
func (s *CloudinaryStorage) Upload(ctx context.Context, data []byte, name, contentType, folder string) (string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.WriteField("upload_preset", s.preset); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("cloudinary error: %s", string(errText))
	}

	var parsed cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode cloudinary response: %w", err)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("cloudinary response missing secure_url")
	}
	return parsed.SecureURL, nil
}
