package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/report"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/stats"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := stats.NewStore()
	var slots models.FieldingSlots
	slots.Set(models.Shortstop, models.FieldingLine{G: 2, Outs: 52, A: 9})
	s.MergeBatting("P001", models.BattingLine{G: 2, AB: 8, H: 3}, slots)
	s.MergePitching("P9", models.PitchingLine{G: 1, Outs: 10, BF: 14})

	snap := &models.SeasonSnapshot{
		RunID:          "run-1",
		Season:         "2024",
		GamesProcessed: 2,
		Players:        s.Snapshot(),
	}

	srv := httptest.NewServer(NewRouter(NewHandler(snap), []string{"http://localhost:3000"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, wantStatus int, out interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	getJSON(t, srv.URL+"/health", http.StatusOK, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestGetSeason(t *testing.T) {
	srv := newTestServer(t)

	var meta models.SeasonMeta
	getJSON(t, srv.URL+"/api/v1/season", http.StatusOK, &meta)
	assert.Equal(t, "run-1", meta.RunID)
	assert.Equal(t, 2, meta.Players)
	assert.Equal(t, 2, meta.GamesProcessed)
}

func TestGetBatting_SuppressesPitcherOnly(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Rows []report.BattingRow `json:"rows"`
	}
	getJSON(t, srv.URL+"/api/v1/batting", http.StatusOK, &body)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "P001", body.Rows[0].PlayerID)
	assert.Equal(t, 3, body.Rows[0].H)
}

func TestGetPitching(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Rows []report.PitchingRow `json:"rows"`
	}
	getJSON(t, srv.URL+"/api/v1/pitching", http.StatusOK, &body)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "3.1", body.Rows[0].IP)
}

func TestGetFielding(t *testing.T) {
	srv := newTestServer(t)

	for _, pos := range []string{"6", "SS"} {
		var body struct {
			Label string               `json:"label"`
			Rows  []report.FieldingRow `json:"rows"`
		}
		getJSON(t, srv.URL+"/api/v1/fielding/"+pos, http.StatusOK, &body)
		assert.Equal(t, "SS", body.Label)
		require.Len(t, body.Rows, 1)
		assert.Equal(t, "17.1", body.Rows[0].Innings)
	}

	var errBody map[string]string
	getJSON(t, srv.URL+"/api/v1/fielding/DH", http.StatusBadRequest, &errBody)
	assert.Contains(t, errBody["error"], "invalid position")
}

func TestGetPlayer(t *testing.T) {
	srv := newTestServer(t)

	var player models.PlayerTotals
	getJSON(t, srv.URL+"/api/v1/players/P9", http.StatusOK, &player)
	assert.Equal(t, 14, player.Pitching.BF)
	assert.Zero(t, player.Batting.G)

	var errBody map[string]string
	getJSON(t, srv.URL+"/api/v1/players/nobody", http.StatusNotFound, &errBody)
	assert.Equal(t, "player not found: nobody", errBody["error"])
}

func TestGetReport(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), report.BattingHeader+"\n"))
	assert.Contains(t, string(body), "    P001   2   8   0   3")
}
