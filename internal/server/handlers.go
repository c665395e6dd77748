package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/giftscout/giftscout/internal/model"
)

type findGiftsRequest struct {
	Description string `json:"description"`
}

type findGiftsResponse struct {
	Criteria model.Criteria  `json:"criteria"`
	Gifts    []model.Listing `json:"gifts"`
	Success  bool            `json:"success"`
}

type giftResponse struct {
	Gift    *model.Listing `json:"gift"`
	Success bool           `json:"success"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFindGifts(w http.ResponseWriter, r *http.Request) {
	var req findGiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "description is required"})
		return
	}

	ctx := r.Context()
	criteria := s.extractor.Extract(ctx, req.Description)
	gifts := s.finder.FindGifts(ctx, criteria)
	if gifts == nil {
		gifts = []model.Listing{}
	}

	s.logger.Info("gift search complete",
		"request_id", RequestIDFromContext(ctx),
		"results", len(gifts),
	)
	writeJSON(w, http.StatusOK, findGiftsResponse{Success: true, Criteria: criteria, Gifts: gifts})
}

func (s *Server) handleGetGift(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid gift id"})
		return
	}

	gift, err := s.store.GetListingByID(r.Context(), id)
	if err != nil {
		s.logger.Error("gift lookup failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if gift == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "gift not found"})
		return
	}

	writeJSON(w, http.StatusOK, giftResponse{Success: true, Gift: gift})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
