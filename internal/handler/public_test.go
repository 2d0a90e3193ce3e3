// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/testutil"
)

func TestPublicPages(t *testing.T) {
	site := newTestSite(t, "")

	tests := []struct {
		path      string
		wantTitle string
		wantPage  string
	}{
		{RouteRoot, titleHome, tmplHome},
		{RouteAbout, titleAbout, tmplSections},
		{RouteFacilities, titleFacilities, tmplSections},
		{RouteInfrastructure, titleInfrastructure, tmplSections},
		{RouteGallery, titleGallery, tmplGallery},
		{RouteAdmission, titleAdmission, tmplAdmission},
		{RouteContact, titleContact, tmplContact},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := site.get(tt.path)
			assertStatus(t, resp, http.StatusOK)
			assertContains(t, body, "title:"+tt.wantTitle+"|", "page:"+tt.wantPage+"|", "Home")
		})
	}
}

func TestNotFound(t *testing.T) {
	site := newTestSite(t, "")

	for _, path := range []string{"/no-such-page", "/page/missing"} {
		resp, body := site.get(path)
		assertStatus(t, resp, http.StatusNotFound)
		assertContains(t, body, "page:"+tmplNotFound+"|")
	}
}

func TestCustomPage(t *testing.T) {
	site := newTestSite(t, "")
	ctx := t.Context()

	published, _, err := site.services.CustomPages.Save(ctx, service.CustomPageForm{
		Title: "Transport", Content: "Bus routes", Enabled: true,
	}, service.ImageField{})
	require.NoError(t, err)
	_, _, err = site.services.CustomPages.Save(ctx, service.CustomPageForm{
		Title: "Draft", Slug: "draft", Content: "Hidden", Enabled: false,
	}, service.ImageField{})
	require.NoError(t, err)

	resp, body := site.get("/page/" + published.Slug)
	assertStatus(t, resp, http.StatusOK)
	assertContains(t, body, "title:Transport|", "page:"+tmplCustomPage+"|")

	resp, _ = site.get("/page/draft")
	assertStatus(t, resp, http.StatusNotFound)
}

func admissionValues() url.Values {
	return url.Values{
		"student_name":   {"Asha Rao"},
		"parent_name":    {"Vikram Rao"},
		"class_applying": {"Grade 5"},
		"mobile":         {"+91 98765 43210"},
		"email":          {"vikram@example.com"},
		"address":        {"12 Lake Road"},
		"message":        {"We would like a campus visit."},
	}
}

func TestSubmitAdmission(t *testing.T) {
	t.Run("stores and redirects", func(t *testing.T) {
		site := newTestSite(t, "")

		resp, _ := site.post(RouteAdmission, admissionValues())
		assertStatus(t, resp, http.StatusSeeOther)
		assertLocation(t, resp, RouteAdmission)
		assertContains(t, site.follow(resp), "flash:success:"+service.MsgAdmissionSuccess)

		rows, err := site.services.Inquiries.List(t.Context())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Asha Rao", rows[0].StudentName)
		assert.Equal(t, "new", rows[0].Status)
	})

	t.Run("validation errors", func(t *testing.T) {
		site := newTestSite(t, "")

		form := admissionValues()
		form.Set("student_name", "A")
		form.Set("message", "short")
		resp, body := site.post(RouteAdmission, form)
		assertStatus(t, resp, http.StatusUnprocessableEntity)
		assertContains(t, body,
			"err:Student name is required.|",
			"err:Message should be at least 10 characters.|",
		)

		rows, err := site.services.Inquiries.List(t.Context())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("bad token", func(t *testing.T) {
		site := newTestSite(t, "")

		form := admissionValues()
		form.Set("csrf_token", "forged")
		resp, body := site.post(RouteAdmission, form)
		assertStatus(t, resp, http.StatusUnprocessableEntity)
		assertContains(t, body, "err:"+service.MsgAdmissionToken+"|")
	})

	t.Run("bad token keeps field errors", func(t *testing.T) {
		site := newTestSite(t, "")

		form := admissionValues()
		form.Set("csrf_token", "forged")
		form.Set("parent_name", " ")
		form.Set("mobile", "12")
		resp, body := site.post(RouteAdmission, form)
		assertStatus(t, resp, http.StatusUnprocessableEntity)
		assertContains(t, body,
			"err:"+service.MsgAdmissionToken+"|",
			"err:Parent name is required.|",
			"err:Enter a valid mobile number.|",
		)

		rows, err := site.services.Inquiries.List(t.Context())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestSubmitContact(t *testing.T) {
	site := newTestSite(t, "")

	resp, body := site.post(RouteContact, url.Values{"name": {"P"}, "email": {"nope"}, "message": {"hi"}})
	assertStatus(t, resp, http.StatusUnprocessableEntity)
	assertContains(t, body,
		"err:Please enter your name.|",
		"err:Please enter a valid email.|",
		"err:Please enter a message with at least 10 characters.|",
	)

	resp, _ = site.post(RouteContact, url.Values{
		"name":    {"Priya"},
		"email":   {"priya@example.com"},
		"message": {"Is there a bus from the station?"},
	})
	assertLocation(t, resp, RouteContact)
	assertContains(t, site.follow(resp), "flash:success:"+service.MsgContactSuccess)

	msgs, err := site.services.Inquiries.Messages(t.Context())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "priya@example.com", msgs[0].Email)
}

func TestSubmitContact_BadTokenKeepsFieldErrors(t *testing.T) {
	site := newTestSite(t, "")

	resp, body := site.post(RouteContact, url.Values{
		"csrf_token": {"forged"},
		"name":       {"P"},
		"email":      {"nope"},
		"message":    {"hi"},
	})
	assertStatus(t, resp, http.StatusUnprocessableEntity)
	assertContains(t, body,
		"err:"+service.MsgContactToken+"|",
		"err:Please enter your name.|",
		"err:Please enter a valid email.|",
		"err:Please enter a message with at least 10 characters.|",
	)

	msgs, err := site.services.Inquiries.Messages(t.Context())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestBasePath(t *testing.T) {
	site := newTestSite(t, "/school")

	resp, body := site.get("/about")
	assertStatus(t, resp, http.StatusOK)
	assertContains(t, body, "page:"+tmplSections+"|")

	resp, _ = site.post(RouteContact, url.Values{
		"name":    {"Priya"},
		"email":   {"priya@example.com"},
		"message": {"Is there a bus from the station?"},
	})
	assertLocation(t, resp, "/school/contact")

	req, err := http.NewRequest(http.MethodGet, site.server.URL+"/", nil)
	require.NoError(t, err)
	resp, _ = site.do(req)
	assertStatus(t, resp, http.StatusFound)
	assertLocation(t, resp, "/school/")
}

func TestStatic(t *testing.T) {
	site := newTestSite(t, "")

	resp, body := site.get("/static/css/site.css")
	assertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "body{}", body)
	assert.Equal(t, "public, max-age=31536000", resp.Header.Get("Cache-Control"))
}

func TestSchemaMissingPublic(t *testing.T) {
	site := newTestSiteWithDB(t, testutil.TestMemoryDB(t), "")

	resp, body := site.get(RouteRoot)
	assertStatus(t, resp, http.StatusOK)
	assertContains(t, body, "schema-missing|", "page:"+tmplHome+"|", "Home")
}
