// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/school-cms-go/internal/render"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/session"
	"github.com/olegiv/school-cms-go/internal/testutil"
)

const (
	testAdminEmail    = "office@school.edu"
	testAdminPassword = "correct-horse"
)

// stubTemplates renders each page as a line of markers the tests can
// assert on: the page name, the flash, the form token and every error.
func stubTemplates() fstest.MapFS {
	layout := `{{define "base"}}title:{{.Title}}|flash:{{.FlashType}}:{{.Flash}}|token:{{.CSRFToken}}|` +
		`{{if .SchemaMissing}}schema-missing|{{end}}{{range .Errors}}err:{{.}}|{{end}}{{template "content" .}}{{end}}`
	fsys := fstest.MapFS{
		"layouts/public.html": {Data: []byte(layout)},
		"layouts/admin.html":  {Data: []byte(layout)},
		"layouts/auth.html":   {Data: []byte(layout)},
		"partials/nav.html":   {Data: []byte(`{{define "nav"}}{{range .}}{{.Label}} {{end}}{{end}}`)},
	}
	for _, name := range []string{
		tmplHome, tmplSections, tmplGallery, tmplAdmission, tmplContact, tmplCustomPage, tmplNotFound,
		tmplLogin, tmplSetup,
		tmplDashboard, tmplAdminSections, tmplSectionEdit, tmplCustomPages, tmplMenu,
		tmplBanners, tmplBannerEdit, tmplAdminGallery, tmplInquiries, tmplMessages, tmplSettings,
	} {
		fsys[name+".html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}page:` + name + `|nav:{{template "nav" .Nav}}|{{end}}`)}
	}
	return fsys
}

type testSite struct {
	t        *testing.T
	db       *sql.DB
	services *service.Services
	server   *httptest.Server
	client   *http.Client
	basePath string
}

func newTestSite(t *testing.T, basePath string) *testSite {
	t.Helper()
	return newTestSiteWithDB(t, testutil.TestSeededDB(t), basePath)
}

func newTestSiteWithDB(t *testing.T, db *sql.DB, basePath string) *testSite {
	t.Helper()
	return newTestSiteWith(t, db, basePath, RouteOptions{})
}

func newTestSiteWith(t *testing.T, db *sql.DB, basePath string, opts RouteOptions) *testSite {
	t.Helper()
	return newTestSiteTemplates(t, db, basePath, opts, stubTemplates())
}

func newTestSiteTemplates(t *testing.T, db *sql.DB, basePath string, opts RouteOptions, templates fs.FS) *testSite {
	t.Helper()

	sm := scs.New()
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, BasePath: basePath})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	uploads := t.TempDir()
	services := service.New(db, service.Deps{BasePath: basePath, UploadsDir: uploads})
	t.Cleanup(services.Intake.Wait)

	h := Routes(Config{
		DB:         db,
		Renderer:   renderer,
		Sessions:   sm,
		Services:   services,
		BasePath:   basePath,
		UploadsDir: uploads,
		Static:     fstest.MapFS{"css/site.css": {Data: []byte("body{}")}},
		Version:    "test",
	}, opts)

	server := httptest.NewServer(sm.LoadAndSave(h))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testSite{t: t, db: db, services: services, server: server, client: client, basePath: basePath}
}

func (s *testSite) do(req *http.Request) (*http.Response, string) {
	s.t.Helper()
	resp, err := s.client.Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("reading body: %v", err)
	}
	return resp, string(body)
}

// get requests a path relative to the site base.
func (s *testSite) get(path string) (*http.Response, string) {
	s.t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.server.URL+s.basePath+path, nil)
	if err != nil {
		s.t.Fatalf("NewRequest: %v", err)
	}
	return s.do(req)
}

// tokenPattern matches the token marker of the stub layout and the hidden
// field of the real templates.
var tokenPattern = regexp.MustCompile(`(?:token:|name="csrf_token" value=")([0-9a-f]+)`)

// token returns the form token of the current session.
func (s *testSite) token() string {
	s.t.Helper()
	_, body := s.get(RouteContact)
	m := tokenPattern.FindStringSubmatch(body)
	if m == nil {
		s.t.Fatalf("no token in %q", body)
	}
	return m[1]
}

// post submits a urlencoded form with a valid token unless one is set.
func (s *testSite) post(path string, form url.Values) (*http.Response, string) {
	s.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if _, ok := form[session.CSRFFieldName]; !ok {
		form.Set(session.CSRFFieldName, s.token())
	}
	req, err := http.NewRequest(http.MethodPost, s.server.URL+s.basePath+path, strings.NewReader(form.Encode()))
	if err != nil {
		s.t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

// postFile submits a multipart form carrying one file in field "image".
func (s *testSite) postFile(path string, form url.Values, filename string, data []byte) (*http.Response, string) {
	s.t.Helper()
	if _, ok := form[session.CSRFFieldName]; !ok {
		form.Set(session.CSRFFieldName, s.token())
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range form {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				s.t.Fatalf("WriteField: %v", err)
			}
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		if err != nil {
			s.t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			s.t.Fatalf("writing file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		s.t.Fatalf("closing multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.server.URL+s.basePath+path, &buf)
	if err != nil {
		s.t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

// follow loads the redirect target of resp and returns its body.
func (s *testSite) follow(resp *http.Response) string {
	s.t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		s.t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	loc := resp.Header.Get("Location")
	req, err := http.NewRequest(http.MethodGet, s.server.URL+loc, nil)
	if err != nil {
		s.t.Fatalf("NewRequest: %v", err)
	}
	_, body := s.do(req)
	return body
}

func (s *testSite) createAdmin() {
	s.t.Helper()
	_, err := s.services.Admins.CreateFirstAdmin(s.t.Context(), service.SetupForm{
		Name:     "Office",
		Email:    testAdminEmail,
		Password: testAdminPassword,
		Confirm:  testAdminPassword,
	})
	if err != nil {
		s.t.Fatalf("CreateFirstAdmin: %v", err)
	}
}

// signIn creates the first admin and logs in through the login form.
func (s *testSite) signIn() {
	s.t.Helper()
	s.createAdmin()
	resp, body := s.post(RouteLogin, url.Values{"email": {testAdminEmail}, "password": {testAdminPassword}})
	if resp.StatusCode != http.StatusSeeOther {
		s.t.Fatalf("login status = %d, body %q", resp.StatusCode, body)
	}
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Errorf("status = %d, want %d", resp.StatusCode, want)
	}
}

func assertLocation(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	if got := resp.Header.Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q\nbody: %s", want, body)
		}
	}
}

// testPNG returns a small valid PNG image.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := range 4 {
		for y := range 4 {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}
