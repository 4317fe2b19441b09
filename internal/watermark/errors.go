package watermark

import "fmt"

// DecodeError means the input bytes could not be decoded as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError means the composited surface could not be serialized to JPEG.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode image: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
