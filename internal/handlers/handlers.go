package handlers

import (
	"fmt"
	"iter"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/report"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler serves one finished season. The snapshot is never modified.
type Handler struct {
	snapshot *models.SeasonSnapshot
	index    map[string]int
}

// NewHandler creates a new handler
func NewHandler(snapshot *models.SeasonSnapshot) *Handler {
	index := make(map[string]int, len(snapshot.Players))
	for i, p := range snapshot.Players {
		index[p.PlayerID] = i
	}
	return &Handler{
		snapshot: snapshot,
		index:    index,
	}
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "season-stats",
	})
}

// GetSeason returns run metadata
func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot.Meta())
}

// GetBatting returns the batting table rows
func (h *Handler) GetBatting(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows": report.BattingRows(h.players()),
	})
}

// GetPitching returns the pitching table rows
func (h *Handler) GetPitching(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows": report.PitchingRows(h.players()),
	})
}

// GetFielding returns the fielding table rows for one position
func (h *Handler) GetFielding(w http.ResponseWriter, r *http.Request) {
	pos, err := models.ParsePosition(chi.URLParam(r, "pos"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid position: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"position": pos,
		"label":    pos.Label(),
		"rows":     report.FieldingRows(h.players(), pos),
	})
}

// GetPlayer returns one player's full totals
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "id")

	i, ok := h.index[playerID]
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("player not found: %s", playerID))
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot.Players[i])
}

// GetReport returns the fixed-width text report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := report.New(w).Render(h.players()); err != nil {
		log.Printf("[http] Error writing report: %v", err)
	}
}

func (h *Handler) players() iter.Seq[*models.PlayerTotals] {
	return report.SnapshotPlayers(h.snapshot.Players)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
