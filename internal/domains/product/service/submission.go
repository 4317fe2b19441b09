package service

import (
	"samplemarine-backend/internal/domains/product/model"
	"samplemarine-backend/internal/pipeline"
)

// SubmissionState is the phase a product submission is currently in.
type SubmissionState string

const (
	StateIdle         SubmissionState = "idle"
	StateValidating   SubmissionState = "validating"
	StateWatermarking SubmissionState = "watermarking"
	StateUploading    SubmissionState = "uploading"
	StateSubmitting   SubmissionState = "submitting"
	StateSuccess      SubmissionState = "success"
	StateError        SubmissionState = "error"
)

// ImageUpload is one raw image file from the multipart form.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Submission carries one product-create attempt through its lifecycle.
// A validation failure returns it to idle so the caller can resubmit the
// same form; a pipeline or storage failure parks it in the error state.
type Submission struct {
	Request model.CreateProductRequest
	Hero    *ImageUpload
	Gallery []ImageUpload

	Err error

	state   SubmissionState
	history []SubmissionState
}

func NewSubmission(req model.CreateProductRequest, hero *ImageUpload, gallery []ImageUpload) *Submission {
	return &Submission{
		Request: req,
		Hero:    hero,
		Gallery: gallery,
		state:   StateIdle,
		history: []SubmissionState{StateIdle},
	}
}

func (s *Submission) State() SubmissionState { return s.state }

// History returns every state the submission has passed through, in order.
// Watermarking and uploading alternate once per asset.
func (s *Submission) History() []SubmissionState {
	out := make([]SubmissionState, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Submission) transition(next SubmissionState) {
	if s.state == next {
		return
	}
	s.state = next
	s.history = append(s.history, next)
}

// rejected records a validation failure and returns the submission to idle.
func (s *Submission) rejected(err error) {
	s.Err = err
	s.transition(StateIdle)
}

// failed parks the submission in the error state.
func (s *Submission) failed(err error) {
	s.Err = err
	s.transition(StateError)
}

// observe mirrors pipeline asset progress onto the submission.
func (s *Submission) observe(status pipeline.Status) {
	switch status {
	case pipeline.StatusWatermarking:
		s.transition(StateWatermarking)
	case pipeline.StatusUploading:
		s.transition(StateUploading)
	}
}
