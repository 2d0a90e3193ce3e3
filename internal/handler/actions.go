// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/school-cms-go/internal/imaging"
	"github.com/olegiv/school-cms-go/internal/session"
)

// Action is the discriminator every admin form posts in its "action" field.
type Action string

// Admin form actions.
const (
	ActionAdd          Action = "add"
	ActionToggle       Action = "toggle"
	ActionDelete       Action = "delete"
	ActionSave         Action = "save"
	ActionUpdateStatus Action = "update_status"
)

// actions maps the actions a screen accepts to their handlers. A handler
// runs only after the form is parsed and its token verified.
type actions map[Action]http.HandlerFunc

// maxFormBytes caps admin request bodies: one image plus the text fields.
const maxFormBytes = imaging.MaxUploadBytes + 1<<20

// parseForm parses a urlencoded or multipart body within maxFormBytes.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(imaging.MaxUploadBytes)
	}
	return r.ParseForm()
}

// parseFormMessage returns the flash text for a parseForm failure.
func parseFormMessage(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return imaging.MsgTooLarge
	}
	return MsgInvalidForm
}

// verifiedForm parses the form and checks its session token. On failure
// it flashes and redirects to back and returns false.
func (b base) verifiedForm(w http.ResponseWriter, r *http.Request, back string) bool {
	if err := parseForm(w, r); err != nil {
		slog.Warn("failed to parse admin form", "path", r.URL.Path, "error", err)
		b.flashError(w, r, back, parseFormMessage(err))
		return false
	}
	if !session.From(b.sessions, r).VerifyForm() {
		b.flashError(w, r, back, MsgInvalidToken)
		return false
	}
	return true
}

// dispatch runs the handler registered for the posted action. Unknown
// actions redirect to back without changing anything.
func (b base) dispatch(w http.ResponseWriter, r *http.Request, back string, table actions) {
	if !b.verifiedForm(w, r, back) {
		return
	}
	run, ok := table[Action(strings.TrimSpace(r.PostFormValue(fieldAction)))]
	if !ok {
		b.flashError(w, r, back, MsgUnknownAction)
		return
	}
	run(w, r)
}

// failMutation reports a failed save, toggle or delete. Upload errors
// carry their own message; anything else is logged and flashed generically.
func (b base) failMutation(w http.ResponseWriter, r *http.Request, back, what string, err error) {
	if msg := imaging.UserMessage(err); msg != "" {
		b.flashError(w, r, back, msg)
		return
	}
	slog.Error("admin mutation failed", "what", what, "error", err)
	b.flashError(w, r, back, "Unable to "+what+". Please try again.")
}
