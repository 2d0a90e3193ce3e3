// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Inquiry and message screen messages.
const (
	MsgInquiryUpdated = "Inquiry status updated."
	MsgInquiryDeleted = "Inquiry deleted."
	MsgInquiryInvalid = "Invalid inquiry selected."
	MsgMessageDeleted = "Message deleted."
	MsgMessageInvalid = "Invalid message selected."
	MsgExportFailed   = "Unable to export inquiries. Please try again."
)

// InquiriesHandler handles the admission inquiries and contact messages.
type InquiriesHandler struct {
	base
}

// NewInquiriesHandler creates a new InquiriesHandler.
func NewInquiriesHandler(cfg Config) *InquiriesHandler {
	return &InquiriesHandler{base: newBase(cfg)}
}

// InquiriesData is rendered by the inquiries screen.
type InquiriesData struct {
	Inquiries []service.InquiryRow
	Statuses  []model.Option
}

// MessagesData is rendered by the messages screen.
type MessagesData struct {
	Messages []store.ContactMessage
}

// List renders every inquiry, newest first.
func (h *InquiriesHandler) List(w http.ResponseWriter, r *http.Request) {
	data := InquiriesData{Statuses: model.InquiryStatuses}
	if !middleware.SchemaMissing(r) {
		rows, err := h.services.Inquiries.List(r.Context())
		if err != nil {
			slog.Error("failed to list inquiries", "error", err)
		}
		data.Inquiries = rows
	}
	h.render(w, r, http.StatusOK, tmplInquiries, h.adminData(r, "Admission Inquiries", "inquiries", data))
}

// Post handles update_status and delete.
func (h *InquiriesHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteInquiries, actions{
		ActionUpdateStatus: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			if id <= 0 {
				h.flashError(w, r, RouteInquiries, MsgInquiryInvalid)
				return
			}
			status, err := h.services.Inquiries.UpdateStatus(r.Context(), id, r.PostFormValue("status"))
			if err != nil {
				h.failMutation(w, r, RouteInquiries, "update the inquiry", err)
				return
			}
			h.audit(r, h.services.Events.LogInquiryEvent, model.EventLevelInfo, "Inquiry status updated",
				map[string]any{"inquiry_id": id, "status": status})
			h.flashSuccess(w, r, RouteInquiries, MsgInquiryUpdated)
		},
		ActionDelete: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			if id <= 0 {
				h.flashError(w, r, RouteInquiries, MsgInquiryInvalid)
				return
			}
			if err := h.services.Inquiries.Delete(r.Context(), id); err != nil {
				h.failMutation(w, r, RouteInquiries, "delete the inquiry", err)
				return
			}
			h.audit(r, h.services.Events.LogInquiryEvent, model.EventLevelWarning, "Inquiry deleted",
				map[string]any{"inquiry_id": id})
			h.flashSuccess(w, r, RouteInquiries, MsgInquiryDeleted)
		},
	})
}

// ExportCSV downloads every inquiry as CSV.
func (h *InquiriesHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", service.ContentTypeCSV, h.services.Inquiries.WriteCSV)
}

// ExportXLSX downloads every inquiry as an Excel workbook.
func (h *InquiriesHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", service.ContentTypeXLSX, h.services.Inquiries.WriteXLSX)
}

// export buffers the file so a failed query still ends in a redirect
// instead of a truncated download.
func (h *InquiriesHandler) export(w http.ResponseWriter, r *http.Request, ext, contentType string,
	write func(ctx context.Context, w io.Writer) error) {
	var buf bytes.Buffer
	if err := write(r.Context(), &buf); err != nil {
		slog.Error("failed to export inquiries", "format", ext, "error", err)
		h.flashError(w, r, RouteInquiries, MsgExportFailed)
		return
	}

	h.audit(r, h.services.Events.LogInquiryEvent, model.EventLevelInfo, "Inquiries exported",
		map[string]any{"format": ext})

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename(ext)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("export download interrupted", "format", ext, "error", err)
	}
}

// Messages renders every contact message, newest first.
func (h *InquiriesHandler) Messages(w http.ResponseWriter, r *http.Request) {
	var data MessagesData
	if !middleware.SchemaMissing(r) {
		msgs, err := h.services.Inquiries.Messages(r.Context())
		if err != nil {
			slog.Error("failed to list contact messages", "error", err)
		}
		data.Messages = msgs
	}
	h.render(w, r, http.StatusOK, tmplMessages, h.adminData(r, "Contact Messages", "messages", data))
}

// PostMessages handles delete.
func (h *InquiriesHandler) PostMessages(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteMessages, actions{
		ActionDelete: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			if id <= 0 {
				h.flashError(w, r, RouteMessages, MsgMessageInvalid)
				return
			}
			if err := h.services.Inquiries.DeleteMessage(r.Context(), id); err != nil {
				h.failMutation(w, r, RouteMessages, "delete the message", err)
				return
			}
			h.audit(r, h.services.Events.LogInquiryEvent, model.EventLevelWarning, "Contact message deleted",
				map[string]any{"message_id": id})
			h.flashSuccess(w, r, RouteMessages, MsgMessageDeleted)
		},
	})
}
