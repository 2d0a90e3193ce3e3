// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const inquiryColumns = `id, student_name, parent_name, class_applying, mobile, email, address, message, status, ip_address, user_agent, country_code, created_at`

func scanInquiry(row interface{ Scan(...any) error }) (AdmissionInquiry, error) {
	var i AdmissionInquiry
	err := row.Scan(&i.ID, &i.StudentName, &i.ParentName, &i.ClassApplying, &i.Mobile, &i.Email,
		&i.Address, &i.Message, &i.Status, &i.IPAddress, &i.UserAgent, &i.CountryCode, &i.CreatedAt)
	return i, err
}

type CreateInquiryParams struct {
	StudentName   string
	ParentName    string
	ClassApplying string
	Mobile        string
	Email         string
	Address       string
	Message       string
	Status        string
	IPAddress     string
	UserAgent     string
	CountryCode   string
	CreatedAt     time.Time
}

const createInquiry = `INSERT INTO admission_inquiries
(student_name, parent_name, class_applying, mobile, email, address, message, status, ip_address, user_agent, country_code, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + inquiryColumns

func (q *Queries) CreateInquiry(ctx context.Context, arg CreateInquiryParams) (AdmissionInquiry, error) {
	return scanInquiry(q.db.QueryRowContext(ctx, createInquiry,
		arg.StudentName, arg.ParentName, arg.ClassApplying, arg.Mobile, arg.Email, arg.Address,
		arg.Message, arg.Status, arg.IPAddress, arg.UserAgent, arg.CountryCode, arg.CreatedAt))
}

func (q *Queries) listInquiries(ctx context.Context, query string, args ...any) ([]AdmissionInquiry, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []AdmissionInquiry
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listInquiries = `SELECT ` + inquiryColumns + ` FROM admission_inquiries ORDER BY created_at DESC, id DESC`

func (q *Queries) ListInquiries(ctx context.Context) ([]AdmissionInquiry, error) {
	return q.listInquiries(ctx, listInquiries)
}

const listRecentInquiries = `SELECT ` + inquiryColumns + ` FROM admission_inquiries ORDER BY created_at DESC, id DESC LIMIT ?`

func (q *Queries) ListRecentInquiries(ctx context.Context, limit int64) ([]AdmissionInquiry, error) {
	return q.listInquiries(ctx, listRecentInquiries, limit)
}

const getInquiry = `SELECT ` + inquiryColumns + ` FROM admission_inquiries WHERE id = ? LIMIT 1`

func (q *Queries) GetInquiry(ctx context.Context, id int64) (AdmissionInquiry, error) {
	return scanInquiry(q.db.QueryRowContext(ctx, getInquiry, id))
}

const countInquiries = `SELECT COUNT(*) FROM admission_inquiries`

func (q *Queries) CountInquiries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countInquiries).Scan(&n)
	return n, err
}

const countInquiriesByStatus = `SELECT COUNT(*) FROM admission_inquiries WHERE status = ?`

func (q *Queries) CountInquiriesByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countInquiriesByStatus, status).Scan(&n)
	return n, err
}

const updateInquiryStatus = `UPDATE admission_inquiries SET status = ? WHERE id = ?`

func (q *Queries) UpdateInquiryStatus(ctx context.Context, id int64, status string) error {
	_, err := q.db.ExecContext(ctx, updateInquiryStatus, status, id)
	return err
}

const deleteInquiry = `DELETE FROM admission_inquiries WHERE id = ?`

func (q *Queries) DeleteInquiry(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteInquiry, id)
	return err
}

// Contact messages

const contactColumns = `id, name, email, message, ip_address, created_at`

type CreateContactMessageParams struct {
	Name      string
	Email     string
	Message   string
	IPAddress string
	CreatedAt time.Time
}

const createContactMessage = `INSERT INTO contact_messages (name, email, message, ip_address, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + contactColumns

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	var m ContactMessage
	err := q.db.QueryRowContext(ctx, createContactMessage,
		arg.Name, arg.Email, arg.Message, arg.IPAddress, arg.CreatedAt,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IPAddress, &m.CreatedAt)
	return m, err
}

const listContactMessages = `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC, id DESC`

func (q *Queries) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IPAddress, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const countContactMessages = `SELECT COUNT(*) FROM contact_messages`

func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countContactMessages).Scan(&n)
	return n, err
}

const deleteContactMessage = `DELETE FROM contact_messages WHERE id = ?`

func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteContactMessage, id)
	return err
}
