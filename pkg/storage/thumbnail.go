package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	thumbSide   = 320
	jpegQuality = 80
)

// Thumbnail downscales image bytes into a JPEG preview. Video artifacts and
// undecodable payloads are skipped by the caller; a missing thumbnail is
// never an error at the flow level.
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbSide, thumbSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
