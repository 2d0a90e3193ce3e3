// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
	"github.com/olegiv/school-cms-go/internal/testutil"

	_ "github.com/mattn/go-sqlite3"
)

// legacySchema mirrors the MySQL tables closely enough for SQLite to
// stand in as the source.
const legacySchema = `
CREATE TABLE admins (id INTEGER PRIMARY KEY, name VARCHAR(120), email VARCHAR(190), password_hash VARCHAR(255), created_at DATETIME);
CREATE TABLE site_settings (setting_key VARCHAR(100) PRIMARY KEY, setting_value TEXT);
CREATE TABLE page_sections (id INTEGER PRIMARY KEY, page_slug VARCHAR(50), section_key VARCHAR(100), title VARCHAR(190),
	content TEXT, image_path VARCHAR(255), is_enabled TINYINT(1), sort_order INT, created_at DATETIME, updated_at DATETIME);
CREATE TABLE gallery_images (id INTEGER PRIMARY KEY, title VARCHAR(190), image_path VARCHAR(255), is_active TINYINT(1), uploaded_at DATETIME);
CREATE TABLE home_banners (id INTEGER PRIMARY KEY, title VARCHAR(190), subtitle VARCHAR(255), image_path VARCHAR(255),
	is_active TINYINT(1), sort_order INT, created_at DATETIME);
CREATE TABLE custom_pages (id INTEGER PRIMARY KEY, title VARCHAR(190), slug VARCHAR(190), excerpt VARCHAR(255), content TEXT,
	hero_image VARCHAR(255), is_enabled TINYINT(1), sort_order INT, created_at DATETIME, updated_at DATETIME);
CREATE TABLE menu_items (id INTEGER PRIMARY KEY, parent_id INT, label VARCHAR(120), item_type VARCHAR(20), link_value VARCHAR(255),
	page_id INT, icon_class VARCHAR(100), open_in_new_tab TINYINT(1), is_enabled TINYINT(1), sort_order INT, created_at DATETIME);
CREATE TABLE admission_inquiries (id INTEGER PRIMARY KEY, student_name VARCHAR(120), parent_name VARCHAR(120), class_applying VARCHAR(50),
	mobile VARCHAR(20), email VARCHAR(190), address TEXT, message TEXT, status VARCHAR(20), created_at DATETIME);
CREATE TABLE contact_messages (id INTEGER PRIMARY KEY, name VARCHAR(120), email VARCHAR(190), message TEXT, created_at DATETIME);

INSERT INTO admins VALUES (1, 'Office', 'Office@School.edu', '$2y$10$abcdefghijklmnopqrstuv', '2024-01-10 08:00:00');
INSERT INTO site_settings VALUES ('school_name', 'Hillside School'), ('primary_color', '#123456'), ('legacy_flag', '1');
INSERT INTO page_sections VALUES (4, 'about', 'history', 'Our History', 'Founded in 1962.', '', 1, 0, '2024-02-01 09:00:00', NULL);
INSERT INTO gallery_images VALUES (7, 'Sports Day', 'uploads/gallery/sports.jpg', 0, '2024-03-05 10:30:00');
INSERT INTO home_banners VALUES (2, 'Open Day', NULL, 'uploads/banners/open.jpg', 1, 2, '2024-03-01 12:00:00');
INSERT INTO custom_pages VALUES (3, 'Transport', 'transport', '', 'Buses leave at 7:30.', NULL, 1, 1, '2024-04-01 00:00:00', '2024-04-02 00:00:00');
INSERT INTO menu_items VALUES
	(10, 12, 'History', 'custom_path', 'about.php', NULL, NULL, 0, 1, 1, NULL),
	(11, NULL, 'Home', 'static', 'index.php', NULL, 'fa-solid fa-house', 0, 1, 1, NULL),
	(12, NULL, 'About', 'static', 'about.php', NULL, NULL, 0, 1, 2, NULL),
	(13, 12, 'Transport', 'custom_page', NULL, 3, NULL, 0, 1, 2, NULL),
	(14, NULL, 'Events', 'custom_path', 'page.php?slug=events', NULL, NULL, 0, 1, 3, NULL),
	(15, NULL, 'Portal', 'external', 'https://portal.example.edu', NULL, NULL, 1, 1, 4, NULL),
	(16, 99, 'Orphan', 'static', 'contact.php', 42, NULL, 0, 0, 5, NULL);
INSERT INTO admission_inquiries VALUES
	(21, 'Ana Lopez', 'Maria Lopez', 'Grade 4', '+1 555 0100', 'maria@example.com', '12 Elm Street', 'Moving in June.', 'in_process', '2024-05-01 10:00:00'),
	(22, 'Ben Ode', 'Sam Ode', 'Grade 1', '+1 555 0101', 'sam@example.com', '3 Oak Road', 'Any seats left?', 'archived', '2024-05-02 10:00:00');
INSERT INTO contact_messages VALUES (5, 'Sam Parker', 'sam@example.com', 'Is the library open?', '2024-05-03 11:00:00');
`

func legacySource(t *testing.T) *Reader {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(legacySchema)
	require.NoError(t, err)
	return NewReaderFromDB(db)
}

func TestImport(t *testing.T) {
	dst := testutil.TestSeededDB(t)
	im := NewImporter(legacySource(t), dst, testutil.TestLogger())
	im.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	result, err := im.Import(t.Context(), Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"site_settings":       2,
		"admins":              1,
		"page_sections":       1,
		"gallery_images":      1,
		"home_banners":        1,
		"custom_pages":        1,
		"menu_items":          7,
		"admission_inquiries": 2,
		"contact_messages":    1,
	}, result.Imported)
	assert.Equal(t, 17, result.TotalImported())

	ctx := t.Context()
	q := store.New(dst)

	name, err := q.GetSetting(ctx, model.SettingSchoolName)
	require.NoError(t, err)
	assert.Equal(t, "Hillside School", name)

	admin, err := q.GetAdminByEmail(ctx, "office@school.edu")
	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, "$2y$10$abcdefghijklmnopqrstuv", admin.PasswordHash)

	section, err := q.GetSection(ctx, 4)
	require.NoError(t, err)
	assert.False(t, section.ImagePath.Valid, "blank image paths become NULL")
	assert.Equal(t, int64(1), section.SortOrder, "sort order is at least 1")
	assert.Equal(t, im.now(), section.UpdatedAt.UTC())

	inquiries, err := q.ListInquiries(ctx)
	require.NoError(t, err)
	statuses := map[int64]string{}
	for _, i := range inquiries {
		statuses[i.ID] = i.Status
	}
	assert.Equal(t, map[int64]string{21: model.InquiryStatusInProcess, 22: model.InquiryStatusNew}, statuses)
}

func TestImport_MenuItems(t *testing.T) {
	dst := testutil.TestSeededDB(t)
	_, err := NewImporter(legacySource(t), dst, testutil.TestLogger()).Import(t.Context(), Options{})
	require.NoError(t, err)

	rows, err := store.New(dst).ListMenuItems(t.Context())
	require.NoError(t, err)
	items := make(map[int64]store.MenuItem, len(rows))
	for _, r := range rows {
		items[r.ID] = r
	}

	tests := []struct {
		id       int64
		parent   int64
		itemType string
		link     string
		pageID   int64
	}{
		{10, 12, model.MenuTypeStatic, model.PageAbout, 0},
		{11, 0, model.MenuTypeStatic, model.PageHome, 0},
		{12, 0, model.MenuTypeStatic, model.PageAbout, 0},
		{13, 12, model.MenuTypeCustomPage, "", 3},
		{14, 0, model.MenuTypeCustomPath, "page/events", 0},
		{15, 0, model.MenuTypeExternal, "https://portal.example.edu", 0},
		{16, 0, model.MenuTypeStatic, model.PageContact, 0},
	}
	for _, tt := range tests {
		t.Run(items[tt.id].Label, func(t *testing.T) {
			got, ok := items[tt.id]
			require.True(t, ok)
			assert.Equal(t, tt.parent, got.ParentID.Int64)
			assert.Equal(t, tt.itemType, got.ItemType)
			assert.Equal(t, tt.link, got.LinkValue.String)
			assert.Equal(t, tt.pageID, got.PageID.Int64)
		})
	}

	assert.Equal(t, model.DefaultMenuIcon, items[12].IconClass.String)
	assert.Equal(t, "fa-solid fa-house", items[11].IconClass.String)
	assert.True(t, items[15].OpenInNewTab)
	assert.False(t, items[16].IsEnabled)
}

func TestImport_SkipExisting(t *testing.T) {
	dst := testutil.TestSeededDB(t)
	src := legacySource(t)

	_, err := NewImporter(src, dst, testutil.TestLogger()).Import(t.Context(), Options{})
	require.NoError(t, err)

	_, err = NewImporter(src, dst, testutil.TestLogger()).Import(t.Context(), Options{})
	require.Error(t, err, "ids collide without SkipExisting")

	result, err := NewImporter(src, dst, testutil.TestLogger()).Import(t.Context(), Options{SkipExisting: true})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Skipped["menu_items"])
	assert.Equal(t, 2, result.Imported["site_settings"], "settings are always upserted")
	assert.Zero(t, result.Imported["admission_inquiries"])
}

func TestMapLink(t *testing.T) {
	tests := []struct {
		itemType, value string
		wantType        string
		wantValue       string
	}{
		{model.MenuTypeStatic, "index.php", model.MenuTypeStatic, model.PageHome},
		{model.MenuTypeStatic, "admission.php", model.MenuTypeStatic, model.PageAdmission},
		{model.MenuTypeStatic, "/gallery.php", model.MenuTypeStatic, model.PageGallery},
		{model.MenuTypeStatic, "contact", model.MenuTypeStatic, model.PageContact},
		{model.MenuTypeStatic, "", model.MenuTypeStatic, model.PageHome},
		{model.MenuTypeStatic, "events.php", model.MenuTypeCustomPath, "events.php"},
		{model.MenuTypeCustomPath, "facilities.php", model.MenuTypeStatic, model.PageFacilities},
		{model.MenuTypeCustomPath, "page.php?slug=fees", model.MenuTypeCustomPath, "page/fees"},
		{model.MenuTypeCustomPath, "page.php", model.MenuTypeCustomPath, "page.php"},
		{model.MenuTypeCustomPath, "#", model.MenuTypeCustomPath, "#"},
		{model.MenuTypeExternal, " https://x.edu ", model.MenuTypeExternal, "https://x.edu"},
		{"dropdown", "/news", model.MenuTypeCustomPath, "news"},
	}

	for _, tt := range tests {
		t.Run(tt.itemType+"/"+tt.value, func(t *testing.T) {
			gotType, gotValue := mapLink(tt.itemType, tt.value)
			if gotType != tt.wantType || gotValue != tt.wantValue {
				t.Errorf("mapLink(%q, %q) = (%q, %q), want (%q, %q)",
					tt.itemType, tt.value, gotType, gotValue, tt.wantType, tt.wantValue)
			}
		})
	}
}
