package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

type crawlRequest struct {
	URL          string `json:"url"`
	BusinessName string `json:"business_name,omitempty"`
	BusinessID   string `json:"business_id,omitempty"`
	MaxPages     int    `json:"max_pages,omitempty"`
}

type crawlResponse struct {
	BusinessID    string `json:"business_id"`
	BusinessName  string `json:"business_name"`
	ProductsFound int    `json:"products_found"`
	Message       string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
		"storage": s.store.Name(),
	})
}

func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := config.ValidateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	business, written, err := s.crawlAndPersist(r.Context(), req.URL, req.BusinessName, req.BusinessID, req.MaxPages)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrCrawlTimeout):
			// Partial results were persisted before the timeout fired.
			writeJSON(w, http.StatusGatewayTimeout, crawlResponse{
				BusinessID:    business.ID,
				BusinessName:  business.Name,
				ProductsFound: written,
				Message:       "crawl timed out, partial results saved",
			})
		case errors.Is(err, types.ErrNoProducts), errors.Is(err, types.ErrInvalidURL):
			writeError(w, http.StatusBadRequest, err)
		default:
			s.logger.Error("crawl failed", "url", req.URL, "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, crawlResponse{
		BusinessID:    business.ID,
		BusinessName:  business.Name,
		ProductsFound: written,
		Message:       fmt.Sprintf("crawled %s, saved %d products", req.URL, written),
	})
}

// handleCrawlAll recrawls every stored business sequentially, refreshing
// its catalog. Failures are reported per business, not fatal.
func (s *Server) handleCrawlAll(w http.ResponseWriter, r *http.Request) {
	businesses, err := s.store.ListBusinesses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	results := make([]crawlResponse, 0, len(businesses))
	for _, b := range businesses {
		_, written, err := s.crawlAndPersist(r.Context(), b.WebsiteURL, b.Name, b.ID, 0)
		msg := "ok"
		if err != nil {
			msg = err.Error()
		}
		results = append(results, crawlResponse{
			BusinessID:    b.ID,
			BusinessName:  b.Name,
			ProductsFound: written,
			Message:       msg,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"businesses": len(businesses),
		"results":    results,
	})
}

func (s *Server) handleListBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := s.store.ListBusinesses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if businesses == nil {
		businesses = []*types.Business{}
	}
	writeJSON(w, http.StatusOK, businesses)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}
