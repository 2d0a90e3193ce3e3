// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/school-cms-go/internal/imaging"
	"github.com/olegiv/school-cms-go/internal/metrics"
)

// ImageField describes the image part of a posted admin form.
type ImageField struct {
	Request *http.Request // multipart form already parsed
	Name    string        // file input name
	Remove  bool          // "remove_image" was ticked
}

// MediaService stores and removes uploaded images and counts uploads.
type MediaService struct {
	processor *imaging.Processor
	metrics   *metrics.Metrics
}

// NewMediaService creates a new media service. m may be nil.
func NewMediaService(processor *imaging.Processor, m *metrics.Metrics) *MediaService {
	return &MediaService{processor: processor, metrics: m}
}

func (s *MediaService) record(dir string, path string, err error) {
	switch {
	case err == nil && path == "":
		return
	case err == nil:
		s.metrics.ImageUploaded(dir, metrics.OutcomeAccepted)
	case errors.Is(err, imaging.ErrNoFile):
		return
	case imaging.UserMessage(err) == imaging.MsgSaveFailed:
		s.metrics.ImageUploaded(dir, metrics.OutcomeError)
	default:
		s.metrics.ImageUploaded(dir, metrics.OutcomeRejected)
	}
}

// Upload stores the posted file in dir. It returns "" when no file was posted.
func (s *MediaService) Upload(f ImageField, dir string) (string, error) {
	if f.Request == nil {
		return "", nil
	}
	path, err := s.processor.FromRequest(f.Request, f.Name, dir)
	s.record(dir, path, err)
	return path, err
}

// Require is Upload for forms where the image is mandatory. A missing
// file fails with an UploadError carrying missingMsg.
func (s *MediaService) Require(f ImageField, dir, missingMsg string) (string, error) {
	if f.Request == nil {
		return "", &imaging.UploadError{Message: missingMsg, Err: imaging.ErrNoFile}
	}
	path, err := s.processor.RequireFromRequest(f.Request, f.Name, dir, missingMsg)
	s.record(dir, path, err)
	return path, err
}

// Replace applies the image part of an edit form to current and returns
// the new stored path. A ticked Remove drops current; a posted file
// replaces it. Replaced files are deleted only after the new one is saved.
func (s *MediaService) Replace(current string, f ImageField, dir string) (string, error) {
	uploaded, err := s.Upload(f, dir)
	if err != nil {
		return current, err
	}
	switch {
	case uploaded != "":
		s.Remove(current)
		return uploaded, nil
	case f.Remove:
		s.Remove(current)
		return "", nil
	default:
		return current, nil
	}
}

// Remove deletes a stored upload. Failures are logged, not returned: the
// owning row is already gone or updated.
func (s *MediaService) Remove(path string) {
	if path == "" {
		return
	}
	if err := s.processor.Delete(path); err != nil {
		slog.Warn("failed to remove upload", "path", path, "error", err, "category", "media")
	}
}
