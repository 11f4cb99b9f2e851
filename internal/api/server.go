package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/search"
	"github.com/Kerhoff/KlaGear/internal/service"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Server provides the HTTP API over the rental service.
type Server struct {
	svc    *service.Service
	logger *logrus.Logger
	mux    *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// API – Catalog
	s.mux.HandleFunc("GET /api/categories", s.handleGetCategories)
	s.mux.HandleFunc("GET /api/gear", s.handleListGear)
	s.mux.HandleFunc("GET /api/gear/{id}", s.handleGetGear)
	s.mux.HandleFunc("GET /api/gear/{id}/availability", s.handleAvailability)
	s.mux.HandleFunc("GET /api/gear/{id}/recommendations", s.handleRecommendations)
	s.mux.HandleFunc("POST /api/compare", s.handleCompare)

	// API – Quotes & booking requests
	s.mux.HandleFunc("POST /api/quote", s.handleQuote)
	s.mux.HandleFunc("POST /api/bookings", s.handleCreateBooking)
	s.mux.HandleFunc("GET /api/bookings/{ref}", s.handleGetBooking)

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

type errorResponse struct {
	Error string   `json:"error"`
	Code  string   `json:"code,omitempty"`
	Dates []string `json:"dates,omitempty"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps a coded service error to its HTTP status. Errors
// without a code are logged and reported as a 500 with a generic message.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, action string) {
	var serr *service.Error
	if !errors.As(err, &serr) {
		s.logger.WithError(err).Errorf("failed to %s", action)
		s.respondError(w, http.StatusInternalServerError, "failed to "+action)
		return
	}

	s.respondJSON(w, statusFor(serr.Code), errorResponse{
		Error: serr.Message,
		Code:  string(serr.Code),
		Dates: serr.Dates,
	})
}

func statusFor(code service.ErrCode) int {
	switch code {
	case service.ErrNotFound:
		return http.StatusNotFound
	case service.ErrConflict, service.ErrUnavailable:
		return http.StatusConflict
	case service.ErrPastDate:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil || r.ContentLength == 0 {
		return false, "request body is empty"
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// queryInt parses an optional integer query parameter. A missing parameter
// yields 0.
func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"gear":     len(s.svc.ListGear(service.ListQuery{})),
		"loadedAt": s.svc.LoadedAt(),
	})
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.svc.CategoryList())
}

func (s *Server) handleListGear(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := queryInt(r, "min_price")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxPrice, err := queryInt(r, "max_price")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var availableOnly bool
	if raw := q.Get("available"); raw != "" {
		availableOnly, err = strconv.ParseBool(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "available must be true or false")
			return
		}
	}

	gear := s.svc.ListGear(service.ListQuery{
		Query: strings.TrimSpace(q.Get("q")),
		Filter: search.Filter{
			Category:      q.Get("category"),
			MinPrice:      minPrice,
			MaxPrice:      maxPrice,
			AvailableOnly: availableOnly,
		},
		Sort: q.Get("sort"),
	})

	s.respondJSON(w, http.StatusOK, gear)
}

func (s *Server) handleGetGear(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.GetGear(r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err, "get gear")
		return
	}
	s.respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		s.respondError(w, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	res, err := s.svc.Availability(r.PathValue("id"), start, end)
	if err != nil {
		s.respondServiceError(w, err, "check availability")
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	gear, err := s.svc.Recommend(r.PathValue("id"), int(limit))
	if err != nil {
		s.respondServiceError(w, err, "get recommendations")
		return
	}
	s.respondJSON(w, http.StatusOK, gear)
}

type compareRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if ok, msg := s.decodeJSON(w, r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := s.svc.Compare(req.IDs)
	if err != nil {
		s.respondServiceError(w, err, "compare gear")
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

// ---------------------------------------------------------------------------
// Quotes & booking requests
// ---------------------------------------------------------------------------

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if ok, msg := s.decodeJSON(w, r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := s.svc.Quote(req)
	if err != nil {
		s.respondServiceError(w, err, "compute quote")
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req service.BookingInput
	if ok, msg := s.decodeJSON(w, r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.Company = strings.TrimSpace(req.Company)
	req.Notes = strings.TrimSpace(req.Notes)

	res, err := s.svc.SubmitBooking(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err, "submit booking request")
		return
	}
	s.respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.svc.GetBooking(r.Context(), r.PathValue("ref"))
	if err != nil {
		s.respondServiceError(w, err, "get booking request")
		return
	}
	s.respondJSON(w, http.StatusOK, b)
}
