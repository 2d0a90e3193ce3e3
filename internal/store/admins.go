// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const adminColumns = `id, name, email, password_hash, last_login_at, created_at`

func scanAdmin(row interface{ Scan(...any) error }) (Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.LastLoginAt, &a.CreatedAt)
	return a, err
}

const countAdmins = `SELECT COUNT(*) FROM admins`

func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAdmins).Scan(&n)
	return n, err
}

type CreateAdminParams struct {
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

const createAdmin = `INSERT INTO admins (name, email, password_hash, created_at)
VALUES (?, ?, ?, ?)
RETURNING ` + adminColumns

func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (Admin, error) {
	return scanAdmin(q.db.QueryRowContext(ctx, createAdmin, arg.Name, arg.Email, arg.PasswordHash, arg.CreatedAt))
}

const getAdminByEmail = `SELECT ` + adminColumns + ` FROM admins WHERE email = ? LIMIT 1`

func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (Admin, error) {
	return scanAdmin(q.db.QueryRowContext(ctx, getAdminByEmail, email))
}

const getAdminByID = `SELECT ` + adminColumns + ` FROM admins WHERE id = ? LIMIT 1`

func (q *Queries) GetAdminByID(ctx context.Context, id int64) (Admin, error) {
	return scanAdmin(q.db.QueryRowContext(ctx, getAdminByID, id))
}

const updateAdminLastLogin = `UPDATE admins SET last_login_at = ? WHERE id = ?`

func (q *Queries) UpdateAdminLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, updateAdminLastLogin, at, id)
	return err
}

const updateAdminPassword = `UPDATE admins SET password_hash = ? WHERE id = ?`

func (q *Queries) UpdateAdminPassword(ctx context.Context, id int64, hash string) error {
	_, err := q.db.ExecContext(ctx, updateAdminPassword, hash, id)
	return err
}
