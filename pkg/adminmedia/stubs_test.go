package adminmedia_test

import (
	"context"
	"io"
	"strings"

	"github.com/habitara/admin-media/pkg/adminmedia"
	"github.com/habitara/admin-media/pkg/adminmedia/storage/memory"
)

func imageFile(name string) *adminmedia.File {
	return &adminmedia.File{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        5,
		Reader:      strings.NewReader("bytes"),
	}
}

func videoFile(name string) *adminmedia.File {
	return &adminmedia.File{
		Name:        name,
		ContentType: "video/mp4",
		Size:        5,
		Reader:      strings.NewReader("bytes"),
	}
}

// flakyStore wraps the memory backend so single operations can be forced to
// fail.
type flakyStore struct {
	*memory.Backend
	uploadErr error
	deleteErr error
}

func (s *flakyStore) Upload(ctx context.Context, key string, reader io.Reader, params adminmedia.UploadParams) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	return s.Backend.Upload(ctx, key, reader, params)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.Backend.Delete(ctx, key)
}

// stubNewsAPI is a hand-rolled NewsAPI double with call counters.
type stubNewsAPI struct {
	records map[string]adminmedia.NewsArticle

	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int

	lastCreate adminmedia.CreateNewsRequest
	lastUpdate adminmedia.UpdateNewsRequest
}

func newStubNewsAPI() *stubNewsAPI {
	return &stubNewsAPI{records: make(map[string]adminmedia.NewsArticle)}
}

func (s *stubNewsAPI) ListNews(ctx context.Context) ([]adminmedia.NewsArticle, error) {
	out := make([]adminmedia.NewsArticle, 0, len(s.records))
	for _, a := range s.records {
		out = append(out, a)
	}
	return out, nil
}

func (s *stubNewsAPI) GetNews(ctx context.Context, id string) (*adminmedia.NewsArticle, error) {
	a, ok := s.records[id]
	if !ok {
		return nil, adminmedia.ErrNotFound
	}
	return &a, nil
}

func (s *stubNewsAPI) CreateNews(ctx context.Context, req adminmedia.CreateNewsRequest) (*adminmedia.NewsArticle, error) {
	s.createCalls++
	s.lastCreate = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	a := adminmedia.NewsArticle{
		ID:        "n1",
		Title:     req.Title,
		Body:      req.Body,
		Author:    req.Author,
		Category:  req.Category,
		IsActive:  req.IsActive,
		ImageURL:  req.ImageURL,
		ImagePath: req.ImagePath,
	}
	s.records[a.ID] = a
	return &a, nil
}

func (s *stubNewsAPI) UpdateNews(ctx context.Context, id string, req adminmedia.UpdateNewsRequest) (*adminmedia.NewsArticle, error) {
	s.updateCalls++
	s.lastUpdate = req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	a, ok := s.records[id]
	if !ok {
		return nil, adminmedia.ErrNotFound
	}
	a.Title = req.Title
	a.Body = req.Body
	a.Author = req.Author
	a.Category = req.Category
	a.IsActive = req.IsActive
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
	if req.ImagePath != nil {
		a.ImagePath = *req.ImagePath
	}
	s.records[id] = a
	return &a, nil
}

func (s *stubNewsAPI) DeleteNews(ctx context.Context, id string) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.records[id]; !ok {
		return adminmedia.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// stubPromotionAPI is a hand-rolled PromotionAPI double with call counters.
type stubPromotionAPI struct {
	records map[string]adminmedia.Promotion

	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int

	lastCreate adminmedia.CreatePromotionRequest
	lastUpdate adminmedia.UpdatePromotionRequest
}

func newStubPromotionAPI() *stubPromotionAPI {
	return &stubPromotionAPI{records: make(map[string]adminmedia.Promotion)}
}

func (s *stubPromotionAPI) ListPromotions(ctx context.Context) ([]adminmedia.Promotion, error) {
	out := make([]adminmedia.Promotion, 0, len(s.records))
	for _, p := range s.records {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPromotionAPI) GetPromotion(ctx context.Context, id string) (*adminmedia.Promotion, error) {
	p, ok := s.records[id]
	if !ok {
		return nil, adminmedia.ErrNotFound
	}
	return &p, nil
}

func (s *stubPromotionAPI) CreatePromotion(ctx context.Context, req adminmedia.CreatePromotionRequest) (*adminmedia.Promotion, error) {
	s.createCalls++
	s.lastCreate = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	p := adminmedia.Promotion{
		ID:          "p1",
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MediaURL:    req.MediaURL,
		MediaPath:   req.MediaPath,
		MediaKind:   req.MediaKind,
	}
	s.records[p.ID] = p
	return &p, nil
}

func (s *stubPromotionAPI) UpdatePromotion(ctx context.Context, id string, req adminmedia.UpdatePromotionRequest) (*adminmedia.Promotion, error) {
	s.updateCalls++
	s.lastUpdate = req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	p, ok := s.records[id]
	if !ok {
		return nil, adminmedia.ErrNotFound
	}
	p.Title = req.Title
	p.Description = req.Description
	p.IsActive = req.IsActive
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	if req.MediaURL != nil {
		p.MediaURL = *req.MediaURL
	}
	if req.MediaPath != nil {
		p.MediaPath = *req.MediaPath
	}
	if req.MediaKind != nil {
		p.MediaKind = *req.MediaKind
	}
	s.records[id] = p
	return &p, nil
}

func (s *stubPromotionAPI) DeletePromotion(ctx context.Context, id string) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.records[id]; !ok {
		return adminmedia.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
