// Package apitest is an in-process stand-in for the back-office metadata
// API, implementing just enough of its REST and error contract for client
// tests: bearer auth, the noticias/publicidad resources, and the 422
// field-error body.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

// Server is a fake metadata API bound to an httptest listener.
type Server struct {
	srv   *httptest.Server
	token string

	mu       sync.Mutex
	news     map[string]adminmedia.NewsArticle
	promos   map[string]adminmedia.Promotion
	failNext int
}

// NewServer starts a fake API accepting the given bearer token. Callers own
// shutdown via Close.
func NewServer(token string) *Server {
	s := &Server{
		token:  token,
		news:   make(map[string]adminmedia.NewsArticle),
		promos: make(map[string]adminmedia.Promotion),
	}

	r := chi.NewRouter()
	r.Route("/api/noticias", func(r chi.Router) {
		r.Get("/", s.listNews)
		r.Get("/{id}", s.getNews)
		r.With(s.auth).Post("/", s.createNews)
		r.With(s.auth).Put("/{id}", s.updateNews)
		r.With(s.auth).Delete("/{id}", s.deleteNews)
	})
	r.Route("/api/publicidad", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/", s.listPromotions)
		r.Get("/{id}", s.getPromotion)
		r.Post("/", s.createPromotion)
		r.Put("/{id}", s.updatePromotion)
		r.Delete("/{id}", s.deletePromotion)
	})

	s.srv = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// FailNext makes the next mutating request answer with the given status and
// a generic error body.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
}

// SeedNews stores an article directly, bypassing the API.
func (s *Server) SeedNews(a adminmedia.NewsArticle) adminmedia.NewsArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.news[a.ID] = a
	return a
}

// SeedPromotion stores a promotion directly, bypassing the API.
func (s *Server) SeedPromotion(p adminmedia.Promotion) adminmedia.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.promos[p.ID] = p
	return p
}

// News returns the stored article, if any.
func (s *Server) News(id string) (adminmedia.NewsArticle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.news[id]
	return a, ok
}

// Promotion returns the stored promotion, if any.
func (s *Server) Promotion(id string) (adminmedia.Promotion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.promos[id]
	return p, ok
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, r, http.StatusUnauthorized, "missing or invalid credentials", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) takeFailure(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	status := s.failNext
	s.failNext = 0
	s.mu.Unlock()
	if status != 0 {
		writeError(w, r, status, "induced failure", nil)
		return true
	}
	return false
}

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]adminmedia.NewsArticle, 0, len(s.news))
	for _, a := range s.news {
		out = append(out, a)
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}

func (s *Server) getNews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.news[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "noticia not found", nil)
		return
	}
	render.JSON(w, r, a)
}

func (s *Server) createNews(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	var req adminmedia.CreateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed body", nil)
		return
	}
	if fields := newsFieldErrors(req.Title, req.Body, req.Author, req.Category); len(fields) > 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	now := time.Now().UTC()
	a := adminmedia.NewsArticle{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Body:        req.Body,
		Author:      req.Author,
		Category:    req.Category,
		IsActive:    req.IsActive,
		PublishDate: req.PublishDate,
		ImageURL:    req.ImageURL,
		ImagePath:   req.ImagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Lock()
	s.news[a.ID] = a
	s.mu.Unlock()

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, a)
}

func (s *Server) updateNews(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	s.mu.Lock()
	a, ok := s.news[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "noticia not found", nil)
		return
	}

	var req adminmedia.UpdateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed body", nil)
		return
	}
	if fields := newsFieldErrors(req.Title, req.Body, req.Author, req.Category); len(fields) > 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	a.Title = req.Title
	a.Body = req.Body
	a.Author = req.Author
	a.Category = req.Category
	a.IsActive = req.IsActive
	a.PublishDate = req.PublishDate
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
	if req.ImagePath != nil {
		a.ImagePath = *req.ImagePath
	}
	a.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.news[a.ID] = a
	s.mu.Unlock()
	render.JSON(w, r, a)
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.news[id]
	delete(s.news, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "noticia not found", nil)
		return
	}
	render.NoContent(w, r)
}

func (s *Server) listPromotions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]adminmedia.Promotion, 0, len(s.promos))
	for _, p := range s.promos {
		out = append(out, p)
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}

func (s *Server) getPromotion(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.promos[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "publicidad not found", nil)
		return
	}
	render.JSON(w, r, p)
}

func (s *Server) createPromotion(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	var req adminmedia.CreatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed body", nil)
		return
	}
	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "required"
	}
	if req.MediaURL == "" {
		fields["mediaUrl"] = "required"
	}
	if len(fields) > 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	now := time.Now().UTC()
	p := adminmedia.Promotion{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MediaURL:    req.MediaURL,
		MediaPath:   req.MediaPath,
		MediaKind:   req.MediaKind,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Lock()
	s.promos[p.ID] = p
	s.mu.Unlock()

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, p)
}

func (s *Server) updatePromotion(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	s.mu.Lock()
	p, ok := s.promos[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "publicidad not found", nil)
		return
	}

	var req adminmedia.UpdatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed body", nil)
		return
	}
	if req.Title == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "validation failed", map[string]string{"title": "required"})
		return
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
	p.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.promos[p.ID] = p
	s.mu.Unlock()
	render.JSON(w, r, p)
}

func (s *Server) deletePromotion(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.promos[id]
	delete(s.promos, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "publicidad not found", nil)
		return
	}
	render.NoContent(w, r)
}

func newsFieldErrors(title, body, author, category string) map[string]string {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "required"
	}
	if body == "" {
		fields["body"] = "required"
	}
	if author == "" {
		fields["author"] = "required"
	}
	if category == "" {
		fields["category"] = "required"
	}
	return fields
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, fields map[string]string) {
	body := map[string]interface{}{"message": message}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
