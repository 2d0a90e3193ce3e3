// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
	"github.com/olegiv/school-cms-go/internal/util"
)

// ErrPageNotFound is returned for custom pages that are missing or disabled.
var ErrPageNotFound = errors.New("page not found")

// Text limits of the home page cards, in characters.
const (
	WelcomeExcerptWidth  = 360
	FacilityExcerptWidth = 140
)

// FallbackImages are the bundled pictures shown where no image was uploaded.
var FallbackImages = []string{
	"static/img/campus-1.svg",
	"static/img/campus-2.svg",
	"static/img/campus-3.svg",
}

func fallbackImage(i int) string {
	return FallbackImages[i%len(FallbackImages)]
}

// Block is one rendered content section.
type Block struct {
	Key     string
	Title   string
	Content string
	Image   string
	Anchor  string
	Icon    string
}

// Stat is one of the home page figures.
type Stat struct {
	Icon, Label, Value, Note string
}

// HomeView is everything the home page renders.
type HomeView struct {
	Banners    []store.HomeBanner
	Welcome    Block
	Facilities []Block
	Offers     []Block
	Features   []Block
	Stats      []Stat
	Moments    []Block
}

// GalleryView is the public gallery.
type GalleryView struct {
	Items  []Block
	Sample bool // no active images; Items holds the sample set
}

// sectionPage describes a built-in page composed of sections.
type sectionPage struct {
	anchorPrefix string
	defaults     []Block
}

var sectionPages = map[string]sectionPage{
	model.PageAbout: {
		anchorPrefix: "about",
		defaults: []Block{
			{Key: "mission", Title: "Our Mission", Content: "To nurture compassionate, curious, and capable learners through strong academics, values, and real-world skills."},
			{Key: "vision", Title: "Our Vision", Content: "To be a trusted school community that enables every student to excel academically, socially, and emotionally."},
			{Key: "core_values", Title: "Core Values", Content: "Integrity, respect, responsibility, and continuous improvement guide all teaching and learning experiences."},
		},
	},
	model.PageFacilities: {
		anchorPrefix: "facility",
		defaults: []Block{
			{Key: "smart_classrooms", Title: "Smart Classrooms", Content: "Digitally enabled classrooms with interactive learning tools that encourage participation and concept clarity from early grades onward."},
			{Key: "science_and_innovation_labs", Title: "Science and Innovation Labs", Content: "Well-equipped labs for physics, chemistry, biology, and computer science where students engage in practical, skill-based learning."},
			{Key: "sports_and_activity_arena", Title: "Sports and Activity Arena", Content: "Dedicated indoor and outdoor spaces that support fitness, teamwork, leadership, and healthy competition across all age groups."},
		},
	},
	model.PageInfrastructure: {
		anchorPrefix: "infrastructure",
		defaults: []Block{
			{Key: "safe_green_campus", Title: "Safe and Green Campus", Content: "A clean, secure, and eco-conscious campus with monitored entry points and learner-friendly open spaces."},
			{Key: "labs_and_learning_hubs", Title: "Labs and Learning Hubs", Content: "Well-planned science and computer labs with practical learning resources that foster innovation and curiosity."},
			{Key: "library_and_activity_spaces", Title: "Library and Activity Spaces", Content: "Dedicated reading, project, and activity zones to support collaboration, creativity, and independent thinking."},
		},
	},
}

// Home page fallbacks.
var (
	homeFacilityDefaults = []Block{
		{Key: "smart-classrooms", Title: "Smart Classrooms", Content: "Interactive boards, digital resources, and student-centered learning spaces for every grade level."},
		{Key: "science-and-computer-labs", Title: "Science and Computer Labs", Content: "Hands-on practical labs designed for experimentation, coding, and applied STEM learning."},
		{Key: "sports-and-activity-zone", Title: "Sports and Activity Zone", Content: "Dedicated grounds and activity spaces to support fitness, teamwork, discipline, and confidence."},
	}
	homeOfferDefaults = []Block{
		{Title: "Strong Academic Foundation", Content: "Our curriculum helps students build confidence, curiosity, and clear fundamentals at every stage."},
		{Title: "Holistic Student Development", Content: "Clubs, sports, projects, and leadership activities prepare students for real-world growth."},
	}
	homeFeatures = []Block{
		{Icon: "fa-solid fa-graduation-cap", Title: "Academic Excellence", Content: "Structured learning with strong focus on outcomes and concept clarity."},
		{Icon: "fa-solid fa-futbol", Title: "Sports and Activities", Content: "Balanced curriculum with sports, clubs, arts, and annual celebrations."},
		{Icon: "fa-solid fa-user-shield", Title: "Safe Campus", Content: "Monitored and student-friendly campus with caring teachers and support staff."},
		{Icon: "fa-solid fa-chalkboard-user", Title: "Mentor Support", Content: "Dedicated faculty mentorship and guidance for each child's growth journey."},
	}
	homeStats = []Stat{
		{Icon: "fa-solid fa-user-graduate", Label: "Students", Value: "800+", Note: "from nursery to senior secondary"},
		{Icon: "fa-solid fa-chalkboard-user", Label: "Faculty", Value: "65+", Note: "experienced teachers and mentors"},
		{Icon: "fa-solid fa-building", Label: "Campus", Value: "4 Acres", Note: "safe, green, and modern infrastructure"},
	}
	homeMoments = []string{"Hands-on Science Experiments", "Sports Day and Team Spirit", "Creative Arts and Events"}
	gallerySamples = []string{"Classroom Learning Session", "School Sports Activities", "Cultural Event Highlights"}
)

const welcomeFallback = "Our school empowers students through modern learning, strong values, and vibrant co-curricular opportunities. We help every child discover confidence, creativity, and leadership in a safe campus environment."

// Anchor returns the in-page anchor of a section: prefix, a dash and the
// slug of the section key, or of the title when the key is blank.
func Anchor(prefix, key, title string, index int) string {
	base := strings.TrimSpace(key)
	if base == "" {
		base = title
	}
	slug := util.Slugify(base)
	if slug == "" {
		slug = strconv.Itoa(index + 1)
	}
	return prefix + "-" + slug
}

// ContentService composes the public pages from sections, banners,
// gallery images and custom pages.
type ContentService struct {
	queries *store.Queries
}

// NewContentService creates a new ContentService.
func NewContentService(db *sql.DB) *ContentService {
	return &ContentService{queries: store.New(db)}
}

// EnabledSections returns the enabled sections of page in display order.
func (s *ContentService) EnabledSections(ctx context.Context, page string) ([]store.PageSection, error) {
	rows, err := s.queries.ListSectionsByPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("listing %s sections: %w", page, err)
	}
	out := rows[:0]
	for _, row := range rows {
		if row.IsEnabled {
			out = append(out, row)
		}
	}
	return out, nil
}

func sectionBlocks(rows []store.PageSection, prefix string) []Block {
	blocks := make([]Block, 0, len(rows))
	for i, row := range rows {
		img := row.ImagePath.String
		if img == "" {
			img = fallbackImage(i)
		}
		blocks = append(blocks, Block{
			Key:     row.SectionKey,
			Title:   row.Title,
			Content: row.Content,
			Image:   img,
			Anchor:  Anchor(prefix, row.SectionKey, row.Title, i),
		})
	}
	return blocks
}

func defaultBlocks(defaults []Block, prefix string) []Block {
	blocks := make([]Block, len(defaults))
	for i, b := range defaults {
		b.Image = fallbackImage(i)
		b.Anchor = Anchor(prefix, b.Key, b.Title, i)
		blocks[i] = b
	}
	return blocks
}

// PageBlocks returns the blocks of a section page (about, facilities or
// infrastructure). The built-in content is returned when the page has no
// enabled sections, and also alongside a read error.
func (s *ContentService) PageBlocks(ctx context.Context, page string) ([]Block, error) {
	sp, ok := sectionPages[page]
	if !ok {
		return nil, fmt.Errorf("unknown section page %q", page)
	}
	rows, err := s.EnabledSections(ctx, page)
	if err != nil || len(rows) == 0 {
		return defaultBlocks(sp.defaults, sp.anchorPrefix), err
	}
	return sectionBlocks(rows, sp.anchorPrefix), nil
}

// Home composes the home page. Read errors are joined and returned with a
// view built from whatever could be read plus the fallbacks.
func (s *ContentService) Home(ctx context.Context, schoolName string) (HomeView, error) {
	var errs []error
	view := HomeView{
		Features: homeFeatures,
		Stats:    homeStats,
	}

	banners, err := s.queries.ListActiveBanners(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("listing banners: %w", err))
	}
	view.Banners = banners

	home, err := s.EnabledSections(ctx, model.PageHome)
	if err != nil {
		errs = append(errs, err)
	}
	if len(home) > 0 {
		w := home[0]
		view.Welcome = Block{Key: w.SectionKey, Title: w.Title, Content: w.Content, Image: w.ImagePath.String}
	} else {
		view.Welcome = Block{Title: "Welcome to " + schoolName, Content: welcomeFallback}
	}
	if view.Welcome.Image == "" {
		view.Welcome.Image = fallbackImage(0)
	}
	view.Welcome.Content = util.Truncate(view.Welcome.Content, WelcomeExcerptWidth)

	if len(home) > 1 {
		view.Offers = sectionBlocks(home[1:], model.PageHome)
	} else {
		view.Offers = defaultBlocks(homeOfferDefaults, model.PageHome)
	}

	facilities, err := s.EnabledSections(ctx, model.PageFacilities)
	if err != nil {
		errs = append(errs, err)
	}
	if len(facilities) > 0 {
		view.Facilities = sectionBlocks(facilities, sectionPages[model.PageFacilities].anchorPrefix)
	} else {
		view.Facilities = defaultBlocks(homeFacilityDefaults, sectionPages[model.PageFacilities].anchorPrefix)
	}
	for i := range view.Facilities {
		view.Facilities[i].Content = util.Truncate(view.Facilities[i].Content, FacilityExcerptWidth)
	}

	for i, title := range homeMoments {
		view.Moments = append(view.Moments, Block{Title: title, Image: fallbackImage(i)})
	}

	return view, errors.Join(errs...)
}

// Gallery returns the active gallery images, newest first, or the sample
// set when there are none.
func (s *ContentService) Gallery(ctx context.Context) (GalleryView, error) {
	rows, err := s.queries.ListGalleryImages(ctx)
	if err != nil {
		err = fmt.Errorf("listing gallery images: %w", err)
	}
	var view GalleryView
	for _, row := range rows {
		if row.IsActive {
			view.Items = append(view.Items, Block{Title: row.Title, Image: row.ImagePath})
		}
	}
	if len(view.Items) == 0 {
		view.Sample = true
		for i, title := range gallerySamples {
			view.Items = append(view.Items, Block{Title: title, Image: fallbackImage(i)})
		}
	}
	return view, err
}

// PublicPage returns the enabled custom page slug. Missing and disabled
// pages both yield ErrPageNotFound.
func (s *ContentService) PublicPage(ctx context.Context, slug string) (store.CustomPage, error) {
	if !util.IsValidSlug(slug) {
		return store.CustomPage{}, ErrPageNotFound
	}
	page, err := s.queries.GetCustomPageBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return store.CustomPage{}, ErrPageNotFound
	}
	if err != nil {
		return store.CustomPage{}, fmt.Errorf("loading page %s: %w", slug, err)
	}
	if !page.IsEnabled {
		return store.CustomPage{}, ErrPageNotFound
	}
	return page, nil
}
