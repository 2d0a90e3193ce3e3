// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/school-cms-go/internal/imaging"
	"github.com/olegiv/school-cms-go/internal/metrics"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// uploadRequest builds a parsed multipart request. A nil data posts no file.
func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("title", "x"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if data != nil {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("writing file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/admin/x", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return r
}

func pngField(t *testing.T, name string) ImageField {
	t.Helper()
	return ImageField{Request: uploadRequest(t, name, "photo.png", pngBytes(t, 12, 8)), Name: name}
}

type testMedia struct {
	*MediaService
	dir     string
	metrics *metrics.Metrics
}

func newTestMedia(t *testing.T) testMedia {
	t.Helper()
	dir := t.TempDir()
	m := metrics.New()
	return testMedia{MediaService: NewMediaService(imaging.NewProcessor(dir), m), dir: dir, metrics: m}
}

// exists reports whether a stored upload path is present on disk.
func (tm testMedia) exists(stored string) bool {
	_, err := os.Stat(filepath.Join(tm.dir, strings.TrimPrefix(stored, imaging.URLPrefix+"/")))
	return err == nil
}

// scrape returns the text exposition of m.
func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	return string(body)
}
