// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging validates and stores uploaded images for sections, banners,
// custom pages and the gallery.
package imaging

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/school-cms-go/internal/util"
)

// MaxUploadBytes is the largest accepted image.
const MaxUploadBytes = 5 * 1024 * 1024

// MaxDimension is the longest side kept for JPEG and PNG uploads; larger images are downscaled.
const MaxDimension = 2560

// URLPrefix is the first segment of every stored upload path.
const URLPrefix = "uploads"

// User-facing upload messages.
const (
	MsgUploadFailed = "Image upload failed. Please try again."
	MsgTooLarge     = "Image must be 5MB or smaller."
	MsgBadType      = "Only JPG, PNG, WEBP, and GIF images are allowed."
	MsgSaveFailed   = "Unable to save uploaded image."
)

// allowedTypes maps accepted MIME types to the stored file extension.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ErrNoFile marks a form that required an image but posted none.
var ErrNoFile = errors.New("no image uploaded")

// UploadError is an upload failure whose message can be shown to the admin.
type UploadError struct {
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UploadError) Unwrap() error { return e.Err }

// UserMessage returns the message to flash for err, or "" when err is not an UploadError.
func UserMessage(err error) string {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return ""
}

// Processor stores uploads below uploadDir.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a new image processor.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// UploadDir returns the root directory uploads are written to.
func (p *Processor) UploadDir() string {
	return p.uploadDir
}

// FromRequest stores the file posted in field under subDir. It returns ""
// and a nil error when no file was posted. The multipart form must already
// be parsed.
func (p *Processor) FromRequest(r *http.Request, field, subDir string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", &UploadError{Message: MsgUploadFailed, Err: err}
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 && header.Filename == "" {
		return "", nil
	}
	return p.Save(file, header, subDir)
}

// RequireFromRequest is FromRequest for forms where the image is mandatory.
// A missing file yields an UploadError carrying missingMsg and wrapping ErrNoFile.
func (p *Processor) RequireFromRequest(r *http.Request, field, subDir, missingMsg string) (string, error) {
	path, err := p.FromRequest(r, field, subDir)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", &UploadError{Message: missingMsg, Err: ErrNoFile}
	}
	return path, nil
}

// Save validates an uploaded file and writes it under subDir with a random
// name. The returned path is relative to the site root, e.g.
// "uploads/gallery/3f2a...9c.jpg". The original filename is discarded.
func (p *Processor) Save(file multipart.File, header *multipart.FileHeader, subDir string) (string, error) {
	if header != nil && header.Size > MaxUploadBytes {
		return "", &UploadError{Message: MsgTooLarge}
	}
	return p.SaveReader(file, subDir)
}

// SaveReader is Save for an arbitrary reader.
func (p *Processor) SaveReader(r io.Reader, subDir string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", &UploadError{Message: MsgUploadFailed, Err: err}
	}
	if len(data) > MaxUploadBytes {
		return "", &UploadError{Message: MsgTooLarge}
	}

	mimeType := DetectMimeType(data)
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return "", &UploadError{Message: MsgBadType}
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", &UploadError{Message: MsgBadType, Err: err}
	}

	data, err = normalize(data, ext)
	if err != nil {
		return "", &UploadError{Message: MsgUploadFailed, Err: err}
	}

	name, err := randomName(ext)
	if err != nil {
		return "", &UploadError{Message: MsgSaveFailed, Err: err}
	}

	if err := p.saveImageFile(subDir, name, data); err != nil {
		return "", &UploadError{Message: MsgSaveFailed, Err: err}
	}

	return URLPrefix + "/" + filepath.ToSlash(filepath.Clean(subDir)) + "/" + name, nil
}

// Delete removes a stored upload. An empty path is a no-op, as is a file
// that is already gone.
func (p *Processor) Delete(storedPath string) error {
	if storedPath == "" {
		return nil
	}
	abs, err := p.absPath(storedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", storedPath, err)
	}
	return nil
}

// absPath maps a stored "uploads/..." path to a file below uploadDir.
func (p *Processor) absPath(storedPath string) (string, error) {
	clean := util.CleanStoredPath(storedPath)
	rel, ok := strings.CutPrefix(clean, URLPrefix+"/")
	if !ok || rel == "" {
		return "", fmt.Errorf("not an upload path: %q", storedPath)
	}
	return util.SafeJoinPath(p.uploadDir, filepath.FromSlash(rel))
}

// DetectMimeType sniffs the content type of data. TIFF is never reported as
// an image (CVE-2023-36308 in disintegration/imaging).
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}

// IsAllowedType reports whether mimeType may be uploaded.
func IsAllowedType(mimeType string) bool {
	_, ok := allowedTypes[mimeType]
	return ok
}

func randomName(ext string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + "." + ext, nil
}

// normalize applies the EXIF orientation of JPEGs and downscales oversized
// JPEG and PNG images. Other formats, and images that need neither, are
// returned unchanged so animated GIFs survive.
func normalize(data []byte, ext string) ([]byte, error) {
	if ext != "jpg" && ext != "png" {
		return data, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	orientation := 1
	if ext == "jpg" {
		orientation = readExifOrientation(bytes.NewReader(data))
	}
	if orientation == 1 && cfg.Width <= MaxDimension && cfg.Height <= MaxDimension {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, orientation)
	if b := img.Bounds(); b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}
	return encodeImage(img, ext)
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180°
// 4: Flip vertical
// 5: Rotate 90° CW + flip horizontal
// 6: Rotate 90° CW
// 7: Rotate 90° CCW + flip horizontal
// 8: Rotate 90° CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if ext == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 88})
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// saveImageFile creates the directory if needed and writes data to subDir/filename
// below uploadDir, refusing anything that would escape it.
func (p *Processor) saveImageFile(subDir, filename string, data []byte) error {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return fmt.Errorf("invalid subdirectory path")
	}

	absTarget, err := util.SafeJoinPath(p.uploadDir, cleanSubDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(absTarget, safeFilename), data, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
