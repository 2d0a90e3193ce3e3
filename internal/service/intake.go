// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/school-cms-go/internal/geoip"
	"github.com/olegiv/school-cms-go/internal/metrics"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/notify"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Form names used in metrics.
const (
	FormAdmission = "admission"
	FormContact   = "contact"
)

// Intake flash messages.
const (
	MsgAdmissionToken   = "Invalid request token. Please refresh the page and try again."
	MsgAdmissionSuccess = "Inquiry submitted successfully. Our admission office will contact you soon."
	MsgContactToken     = "Invalid request token. Please refresh and try again."
	MsgContactSuccess   = "Thank you for contacting us. We will respond shortly."
)

const notifyTimeout = 15 * time.Second

// AdmissionForm is the public admission inquiry form.
type AdmissionForm struct {
	StudentName   string `form:"student_name" validate:"min=2"`
	ParentName    string `form:"parent_name" validate:"min=2"`
	ClassApplying string `form:"class_applying" validate:"required"`
	Mobile        string `form:"mobile" validate:"phone"`
	Email         string `form:"email" validate:"required,email"`
	Address       string `form:"address" validate:"required"`
	Message       string `form:"message" validate:"min=10"`
}

var admissionMessages = map[string]string{
	"student_name":   "Student name is required.",
	"parent_name":    "Parent name is required.",
	"class_applying": "Please provide the class applying for.",
	"mobile":         "Enter a valid mobile number.",
	"email":          "Enter a valid email address.",
	"address":        "Address is required.",
	"message":        "Message should be at least 10 characters.",
}

// Validate checks the form.
func (f AdmissionForm) Validate() ValidationErrors {
	return checkStruct(f, admissionMessages)
}

// RejectToken reports a forged or expired form token together with every
// field error of f.
func (f AdmissionForm) RejectToken() ValidationErrors {
	verrs := ValidationErrors{{Field: "csrf_token", Message: MsgAdmissionToken}}
	return append(verrs, f.trimmed().Validate()...)
}

func (f AdmissionForm) trimmed() AdmissionForm {
	return AdmissionForm{
		StudentName:   strings.TrimSpace(f.StudentName),
		ParentName:    strings.TrimSpace(f.ParentName),
		ClassApplying: strings.TrimSpace(f.ClassApplying),
		Mobile:        strings.TrimSpace(f.Mobile),
		Email:         strings.TrimSpace(f.Email),
		Address:       strings.TrimSpace(f.Address),
		Message:       strings.TrimSpace(f.Message),
	}
}

// ContactForm is the public contact form.
type ContactForm struct {
	Name    string `form:"name" validate:"min=2"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"min=10"`
}

var contactMessages = map[string]string{
	"name":    "Please enter your name.",
	"email":   "Please enter a valid email.",
	"message": "Please enter a message with at least 10 characters.",
}

// Validate checks the form.
func (f ContactForm) Validate() ValidationErrors {
	return checkStruct(f, contactMessages)
}

// RejectToken reports a forged or expired form token together with every
// field error of f.
func (f ContactForm) RejectToken() ValidationErrors {
	verrs := ValidationErrors{{Field: "csrf_token", Message: MsgContactToken}}
	return append(verrs, f.trimmed().Validate()...)
}

func (f ContactForm) trimmed() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// Submitter identifies who posted a form.
type Submitter struct {
	IP        string
	UserAgent string
}

// IntakeService stores public submissions.
type IntakeService struct {
	queries  *store.Queries
	geo      *geoip.Lookup
	notifier *notify.Notifier
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
}

// NewIntakeService creates a new IntakeService. geo, notifier and m may be nil.
func NewIntakeService(db *sql.DB, geo *geoip.Lookup, notifier *notify.Notifier, m *metrics.Metrics) *IntakeService {
	return &IntakeService{
		queries:  store.New(db),
		geo:      geo,
		notifier: notifier,
		metrics:  m,
	}
}

func (s *IntakeService) country(ip string) string {
	if s.geo == nil {
		return ""
	}
	return s.geo.LookupCountry(ip)
}

// SubmitAdmission validates f and stores a new inquiry with status "new".
// Rejected forms return ValidationErrors and store nothing. When a
// notifier is configured the office is mailed in the background.
func (s *IntakeService) SubmitAdmission(ctx context.Context, f AdmissionForm, sub Submitter) (store.AdmissionInquiry, error) {
	f = f.trimmed()
	if verrs := f.Validate(); len(verrs) > 0 {
		s.metrics.FormSubmitted(FormAdmission, metrics.OutcomeRejected)
		return store.AdmissionInquiry{}, verrs
	}

	inq, err := s.queries.CreateInquiry(ctx, store.CreateInquiryParams{
		StudentName:   f.StudentName,
		ParentName:    f.ParentName,
		ClassApplying: f.ClassApplying,
		Mobile:        f.Mobile,
		Email:         f.Email,
		Address:       f.Address,
		Message:       f.Message,
		Status:        model.InquiryStatusNew,
		IPAddress:     sub.IP,
		UserAgent:     sub.UserAgent,
		CountryCode:   s.country(sub.IP),
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		s.metrics.FormSubmitted(FormAdmission, metrics.OutcomeError)
		return inq, fmt.Errorf("storing inquiry: %w", err)
	}
	s.metrics.FormSubmitted(FormAdmission, metrics.OutcomeAccepted)

	if s.notifier != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
			defer cancel()
			if err := s.notifier.InquiryReceived(nctx, inq); err != nil {
				slog.Warn("inquiry notification failed", "inquiry_id", inq.ID, "error", err, "category", model.EventCategoryInquiry)
			}
		}()
	}
	return inq, nil
}

// SubmitContact validates f and stores a contact message.
func (s *IntakeService) SubmitContact(ctx context.Context, f ContactForm, sub Submitter) (store.ContactMessage, error) {
	f = f.trimmed()
	if verrs := f.Validate(); len(verrs) > 0 {
		s.metrics.FormSubmitted(FormContact, metrics.OutcomeRejected)
		return store.ContactMessage{}, verrs
	}

	msg, err := s.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		IPAddress: sub.IP,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.metrics.FormSubmitted(FormContact, metrics.OutcomeError)
		return msg, fmt.Errorf("storing contact message: %w", err)
	}
	s.metrics.FormSubmitted(FormContact, metrics.OutcomeAccepted)
	return msg, nil
}

// Wait blocks until pending notifications have finished.
func (s *IntakeService) Wait() {
	s.wg.Wait()
}
