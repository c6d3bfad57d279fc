package utils

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	var err error
	if filepath.Ext(name) == ".jpg" {
		err = jpeg.Encode(&buf, img, nil)
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

func TestProcessImageFileNormalizesToPNG(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), "photo.jpg", 100, 80)

	att, err := ProcessImageFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// MIME follows the extension; the bytes are always PNG
	if att.MimeType != "image/jpeg" {
		t.Errorf("expected image/jpeg mime, got %s", att.MimeType)
	}
	img, format, err := image.Decode(bytes.NewReader(att.Data))
	if err != nil {
		t.Fatalf("attachment data is not a decodable image: %v", err)
	}
	if format != "png" {
		t.Errorf("expected png-encoded data, got %s", format)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Errorf("small image must keep its dimensions, got %v", img.Bounds())
	}
	if att.ID == "" {
		t.Error("attachment must have an id")
	}
}

func TestProcessImageFileDownscales(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), "big.png", 2048, 1024)

	att, err := ProcessImageFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(att.Data))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if img.Bounds().Dx() != maxImageDimension {
		t.Errorf("expected width %d, got %d", maxImageDimension, img.Bounds().Dx())
	}
	if img.Bounds().Dy() != maxImageDimension/2 {
		t.Errorf("expected aspect ratio preserved, got height %d", img.Bounds().Dy())
	}
}

func TestProcessImageFileMissing(t *testing.T) {
	if _, err := ProcessImageFile(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProcessImageDefaultsMime(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	att, err := ProcessImage(img, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.MimeType != "image/png" {
		t.Errorf("expected default image/png mime, got %s", att.MimeType)
	}
}

func TestMimeTypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"photo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"photo.gif", "image/gif"},
		{"notes.txt", "image/png"},
		{"noext", "image/png"},
	}

	for _, tt := range tests {
		if got := MimeTypeForPath(tt.path); got != tt.want {
			t.Errorf("MimeTypeForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsImagePath(t *testing.T) {
	if !IsImagePath("a.png") || !IsImagePath("b.JPG") {
		t.Error("expected image extensions to be recognized")
	}
	if IsImagePath("c.txt") {
		t.Error("expected non-image extension to be rejected")
	}
}
