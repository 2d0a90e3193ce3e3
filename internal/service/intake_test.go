// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/school-cms-go/internal/metrics"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/notify"
	"github.com/olegiv/school-cms-go/internal/testutil"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg notify.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-1", nil
}

func TestSubmitAdmission(t *testing.T) {
	db := testutil.TestDB(t)
	sender := &fakeSender{}
	m := metrics.New()
	notifier := notify.New(sender, "site@school.edu", "office@school.edu", func(context.Context) string { return "Greenfield" })
	svc := NewIntakeService(db, nil, notifier, m)

	form := validAdmission()
	form.StudentName = "  Al "
	inq, err := svc.SubmitAdmission(t.Context(), form, Submitter{IP: "203.0.113.9", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "Al", inq.StudentName)
	assert.Equal(t, model.InquiryStatusNew, inq.Status)
	assert.Equal(t, "203.0.113.9", inq.IPAddress)
	assert.Empty(t, inq.CountryCode, "no GeoIP database configured")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"office@school.edu"}, sender.sent[0].To)
	assert.Equal(t, form.Email, sender.sent[0].ReplyTo)
	assert.Contains(t, sender.sent[0].Subject, "[Greenfield]")

	assert.Contains(t, scrape(t, m), `schoolcms_form_submissions_total{form="admission",outcome="accepted"} 1`)
}

func TestSubmitAdmission_RejectedStoresNothing(t *testing.T) {
	db := testutil.TestDB(t)
	sender := &fakeSender{}
	m := metrics.New()
	svc := NewIntakeService(db, nil, notify.New(sender, "a@b.c", "d@e.f", nil), m)

	form := validAdmission()
	form.Message = "short"
	_, err := svc.SubmitAdmission(t.Context(), form, Submitter{})
	svc.Wait()

	verrs, ok := AsValidation(err)
	require.True(t, ok, "want ValidationErrors, got %v", err)
	assert.Equal(t, []string{"Message should be at least 10 characters."}, verrs.Messages())
	assert.Empty(t, sender.sent)

	rows, err := NewInquiryService(db, nil).List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Contains(t, scrape(t, m), `schoolcms_form_submissions_total{form="admission",outcome="rejected"} 1`)
}

func TestSubmitAdmission_NotifyFailureKeepsInquiry(t *testing.T) {
	db := testutil.TestDB(t)
	sender := &fakeSender{err: errors.New("resend down")}
	svc := NewIntakeService(db, nil, notify.New(sender, "a@b.c", "d@e.f", nil), nil)

	inq, err := svc.SubmitAdmission(t.Context(), validAdmission(), Submitter{IP: "127.0.0.1"})
	require.NoError(t, err)
	svc.Wait()

	rows, err := NewInquiryService(db, nil).List(t.Context())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, inq.ID, rows[0].ID)
}

func TestSubmitContact(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewIntakeService(db, nil, nil, nil)
	inquiries := NewInquiryService(db, nil)

	tests := []struct {
		name string
		form ContactForm
		msgs []string
	}{
		{"valid", ContactForm{Name: "Jo", Email: "jo@example.com", Message: "Is there a bus to the north side?"}, nil},
		{"all bad", ContactForm{Name: "J", Email: "jo", Message: "hi"}, []string{
			"Please enter your name.", "Please enter a valid email.", "Please enter a message with at least 10 characters.",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitContact(t.Context(), tt.form, Submitter{IP: "10.0.0.2"})
			if tt.msgs == nil {
				require.NoError(t, err)
				return
			}
			verrs, ok := AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.msgs, verrs.Messages())
		})
	}

	msgs, err := inquiries.Messages(t.Context())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "10.0.0.2", msgs[0].IPAddress)
	assert.True(t, strings.HasPrefix(msgs[0].Message, "Is there a bus"))
}

func TestRejectToken(t *testing.T) {
	valid := AdmissionForm{
		StudentName: "Al", ParentName: "Maria Lopez", ClassApplying: "Grade 4", Mobile: "+1 555-0100",
		Email: "maria@example.com", Address: "12 Elm Street", Message: "We are moving in June.",
	}

	tests := []struct {
		name string
		got  ValidationErrors
		want []string
	}{
		{"admission valid fields", valid.RejectToken(), []string{MsgAdmissionToken}},
		{"admission bad fields", AdmissionForm{StudentName: " A ", ParentName: "Maria", ClassApplying: "Grade 4",
			Mobile: "+1 555-0100", Email: "maria@example.com", Address: "12 Elm Street", Message: "short"}.RejectToken(),
			[]string{MsgAdmissionToken, "Student name is required.", "Message should be at least 10 characters."}},
		{"contact valid fields", ContactForm{Name: "Jo", Email: "jo@example.com", Message: "Is the library open?"}.RejectToken(),
			[]string{MsgContactToken}},
		{"contact bad fields", ContactForm{Name: "J", Email: "jo", Message: "hi"}.RejectToken(), []string{
			MsgContactToken, "Please enter your name.", "Please enter a valid email.", "Please enter a message with at least 10 characters.",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.Messages())
			assert.True(t, tt.got.Has("csrf_token"))
		})
	}
}
