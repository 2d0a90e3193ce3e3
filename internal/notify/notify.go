// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify e-mails the admission office when a new inquiry arrives.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/olegiv/school-cms-go/internal/store"
)

// Sender delivers one message. ResendSender is the production implementation.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Message is a single outgoing e-mail.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// ResendSender sends e-mail through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a sender for the given API key.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send implements Sender and returns the Resend message id.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}

// Notifier formats inquiry notifications.
type Notifier struct {
	sender     Sender
	from       string
	to         string
	schoolName func(context.Context) string
}

// New creates a notifier. schoolName supplies the current site name for the subject line.
func New(sender Sender, from, to string, schoolName func(context.Context) string) *Notifier {
	return &Notifier{sender: sender, from: from, to: to, schoolName: schoolName}
}

var inquiryTmpl = template.Must(template.New("inquiry").Parse(`<h2>New admission inquiry</h2>
<table cellpadding="4">
<tr><th align="left">Student</th><td>{{.StudentName}}</td></tr>
<tr><th align="left">Parent</th><td>{{.ParentName}}</td></tr>
<tr><th align="left">Class</th><td>{{.ClassApplying}}</td></tr>
<tr><th align="left">Mobile</th><td>{{.Mobile}}</td></tr>
<tr><th align="left">Email</th><td>{{.Email}}</td></tr>
<tr><th align="left">Address</th><td>{{.Address}}</td></tr>
</table>
<p>{{.Message}}</p>`))

// InquiryReceived sends the notification for a stored inquiry.
func (n *Notifier) InquiryReceived(ctx context.Context, inq store.AdmissionInquiry) error {
	var body bytes.Buffer
	if err := inquiryTmpl.Execute(&body, inq); err != nil {
		return fmt.Errorf("rendering inquiry mail: %w", err)
	}

	school := "School"
	if n.schoolName != nil {
		school = n.schoolName(ctx)
	}

	id, err := n.sender.Send(ctx, Message{
		From:    n.from,
		To:      []string{n.to},
		ReplyTo: inq.Email,
		Subject: fmt.Sprintf("[%s] New admission inquiry: %s (%s)", school, inq.StudentName, inq.ClassApplying),
		HTML:    body.String(),
	})
	if err != nil {
		return err
	}
	slog.Info("inquiry notification sent", "inquiry_id", inq.ID, "message_id", id)
	return nil
}
