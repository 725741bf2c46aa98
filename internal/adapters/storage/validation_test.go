package storage

import (
	"testing"

	"lendingleads_backend/platform/apperr"
)

func TestValidateContentType(t *testing.T) {
	allowed := []string{
		"application/pdf",
		"APPLICATION/PDF",
		"image/png",
		"text/csv; charset=utf-8",
	}
	for _, ct := range allowed {
		if err := validateContentType(ct); err != nil {
			t.Errorf("content type %q rejected: %v", ct, err)
		}
	}

	rejected := []string{
		"video/mp4",
		"application/octet-stream",
		"text/html",
		"",
	}
	for _, ct := range rejected {
		err := validateContentType(ct)
		if err == nil {
			t.Errorf("content type %q accepted", ct)
			continue
		}
		if !apperr.Is(err, apperr.KindBadRequest) {
			t.Errorf("content type %q: expected bad request, got %v", ct, err)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	const maxSize = 1024

	if err := validateFileSize(512, maxSize); err != nil {
		t.Errorf("size within limit rejected: %v", err)
	}
	if err := validateFileSize(maxSize, maxSize); err != nil {
		t.Errorf("size at limit rejected: %v", err)
	}
	if err := validateFileSize(0, maxSize); err == nil {
		t.Errorf("zero size accepted")
	}
	if err := validateFileSize(maxSize+1, maxSize); err == nil {
		t.Errorf("oversized file accepted")
	}
}
