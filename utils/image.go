package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"quick-chat-client/llm"
)

const (
	// maxImageFileSize rejects absurdly large source files before decoding
	maxImageFileSize = 10 * 1024 * 1024

	// maxImageDimension is the largest width or height sent upstream;
	// bigger images are downscaled to keep request bodies small
	maxImageDimension = 1024
)

// ProcessImageFile loads an image from disk and returns a normalized
// attachment. The pixel data is re-encoded as PNG regardless of the source
// format; the MIME type is inferred from the file extension and only labels
// the data URL.
func ProcessImageFile(path string) (llm.ImageAttachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return llm.ImageAttachment{}, fmt.Errorf("file not found: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return llm.ImageAttachment{}, fmt.Errorf("image too large: %d bytes (max %d bytes)", info.Size(), maxImageFileSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return llm.ImageAttachment{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return llm.ImageAttachment{}, fmt.Errorf("failed to decode image: %w", err)
	}

	return ProcessImage(img, MimeTypeForPath(path))
}

// ProcessImage normalizes a decoded image (e.g. a pasted bitmap) into an
// attachment. An empty mimeType defaults to image/png.
func ProcessImage(img image.Image, mimeType string) (llm.ImageAttachment, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return llm.ImageAttachment{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return llm.NewImageAttachment(buf.Bytes(), mimeType), nil
}

// downscale shrinks an image to fit maxImageDimension, preserving aspect ratio
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width <= maxImageDimension && height <= maxImageDimension {
		return img
	}

	if width > height {
		return resize.Resize(maxImageDimension, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, maxImageDimension, img, resize.Lanczos3)
}

// MimeTypeForPath infers an image MIME type from a file extension,
// defaulting to image/png for unknown extensions
func MimeTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType := mime.TypeByExtension(ext)

	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		return "image/png"
	}

	// Strip any charset parameter
	if idx := strings.Index(mimeType, ";"); idx > 0 {
		mimeType = mimeType[:idx]
	}

	return mimeType
}

// IsImagePath reports whether a file extension looks like a supported image
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
