package ingest

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/stats"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/testutil"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

type sliceSource struct {
	games []*models.BoxScore
	err   error
	next  int
}

func (s *sliceSource) Next(ctx context.Context) (*models.BoxScore, error) {
	if s.next >= len(s.games) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	g := s.games[s.next]
	s.next++
	return g, nil
}

type recordingPublisher struct {
	runIDs  []string
	gameIDs []string
	err     error
}

func (r *recordingPublisher) PublishGameProcessed(ctx context.Context, runID string, boxscore *models.BoxScore) error {
	r.runIDs = append(r.runIDs, runID)
	r.gameIDs = append(r.gameIDs, boxscore.GameID)
	return r.err
}

func singleBatterGame(gameID, playerID string) *models.BoxScore {
	return testutil.GameFixture(gameID, []models.PlayerLine{
		testutil.PlayerLineFixture(playerID, func(l *models.PlayerLine) {
			l.Batting = models.BattingLine{G: 1, AB: 1, H: 1}
		}),
	}, nil)
}

func TestProcessGame_MergesBothSides(t *testing.T) {
	store := stats.NewStore()
	p := NewProcessor(store)

	var ss models.FieldingSlots
	ss.Set(models.Shortstop, models.FieldingLine{G: 1, Outs: 27, A: 6})

	game := &models.BoxScore{
		GameID: "BOS202404010",
		Visitors: models.TeamBoxScore{
			Team:     "NYA",
			Players:  []models.PlayerLine{{PlayerID: "V1", Batting: models.BattingLine{G: 1, AB: 4}, Fielding: ss}},
			Pitchers: []models.PitcherLine{{PlayerID: "VP", Pitching: models.PitchingLine{G: 1, GS: 1, Outs: 24, BF: 30}}},
		},
		Home: models.TeamBoxScore{
			Team:     "BOS",
			Players:  []models.PlayerLine{{PlayerID: "H1", Batting: models.BattingLine{G: 1, AB: 3, BB: 1}}},
			Pitchers: []models.PitcherLine{{PlayerID: "HP", Pitching: models.PitchingLine{G: 1, CG: 1, Outs: 27, BF: 33}}},
		},
	}

	require.NoError(t, p.ProcessGame(context.Background(), game))

	var ids []string
	for pl := range store.Players() {
		ids = append(ids, pl.PlayerID)
	}
	assert.Equal(t, []string{"V1", "VP", "H1", "HP"}, ids)

	v1, _ := store.Lookup("V1")
	assert.Equal(t, 6, v1.FieldingAt(models.Shortstop).A)
	hp, _ := store.Lookup("HP")
	assert.Equal(t, 33, hp.Pitching.BF)
	assert.Equal(t, 1, p.GamesProcessed())
	assert.Equal(t, 4, game.Appearances())
	assert.Equal(t, 4, p.LinesMerged())
}

func TestRun_ThreeGamesOnePlayer(t *testing.T) {
	store := stats.NewStore()
	p := NewProcessor(store, WithRunID("run-1"))

	source := &sliceSource{games: []*models.BoxScore{
		singleBatterGame("G1", "P001"),
		singleBatterGame("G2", "P001"),
		singleBatterGame("G3", "P001"),
	}}

	n, err := p.Run(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	snap := p.Snapshot("2024")
	require.Len(t, snap.Players, 1)
	assert.Equal(t, "P001", snap.Players[0].PlayerID)
	assert.Equal(t, 3, snap.Players[0].Batting.AB)
	assert.Equal(t, 3, snap.Players[0].Batting.H)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Equal(t, "2024", snap.Season)
	assert.Equal(t, 3, snap.GamesProcessed)
	assert.Equal(t, 3, p.LinesMerged())
}

func TestRun_FirstSeenOrderAcrossGames(t *testing.T) {
	store := stats.NewStore()
	p := NewProcessor(store)

	source := &sliceSource{games: []*models.BoxScore{
		singleBatterGame("G1", "P2"),
		singleBatterGame("G2", "P1"),
		singleBatterGame("G3", "P2"),
	}}

	_, err := p.Run(context.Background(), source)
	require.NoError(t, err)

	snap := p.Snapshot("")
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "P2", snap.Players[0].PlayerID)
	assert.Equal(t, "P1", snap.Players[1].PlayerID)
}

func TestRun_SourceError(t *testing.T) {
	p := NewProcessor(stats.NewStore())
	source := &sliceSource{
		games: []*models.BoxScore{singleBatterGame("G1", "P1")},
		err:   errors.New("truncated input"),
	}

	n, err := p.Run(context.Background(), source)
	assert.Equal(t, 1, n)
	assert.ErrorContains(t, err, "reading game 2: truncated input")
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(stats.NewStore())
	n, err := p.Run(ctx, &sliceSource{games: []*models.BoxScore{singleBatterGame("G1", "P1")}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestProcessGame_StrictRejectsWholeGame(t *testing.T) {
	store := stats.NewStore()
	p := NewProcessor(store, WithStrict(true))

	game := singleBatterGame("G1", "P1")
	game.Visitors.Pitchers = []models.PitcherLine{{PlayerID: "VP", Pitching: models.PitchingLine{BF: -1}}}

	err := p.ProcessGame(context.Background(), game)

	var invalid *stats.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "VP", invalid.PlayerID)
	assert.Zero(t, store.Len())
	assert.Zero(t, p.GamesProcessed())
}

func TestProcessGame_LenientAcceptsGarbage(t *testing.T) {
	store := stats.NewStore()
	p := NewProcessor(store)

	game := singleBatterGame("G1", "")
	game.Home.Players[0].Batting.AB = -2

	require.NoError(t, p.ProcessGame(context.Background(), game))
	rec, ok := store.Lookup("")
	require.True(t, ok)
	assert.Equal(t, -2, rec.Batting.AB)
}

func TestProcessGame_PublishesAndToleratesPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	p := NewProcessor(stats.NewStore(), WithPublisher(pub), WithRunID("run-7"))

	require.NoError(t, p.ProcessGame(context.Background(), singleBatterGame("G1", "P1")))
	require.NoError(t, p.ProcessGame(context.Background(), singleBatterGame("G2", "P1")))

	assert.Equal(t, []string{"G1", "G2"}, pub.gameIDs)
	assert.Equal(t, []string{"run-7", "run-7"}, pub.runIDs)
}

func TestNewProcessor_GeneratesRunID(t *testing.T) {
	a := NewProcessor(stats.NewStore())
	b := NewProcessor(stats.NewStore())
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestProcessGame_PitcherWhoAlsoBats(t *testing.T) {
	store := stats.NewStore()
	p := NewProcessor(store)

	game := testutil.GameFixture("G1",
		[]models.PlayerLine{testutil.PlayerLineFixture("P9", testutil.AtPosition(models.Pitcher))},
		[]models.PitcherLine{testutil.PitcherLineFixture("P9")},
	)
	require.NoError(t, p.ProcessGame(context.Background(), game))

	rec, ok := store.Lookup("P9")
	require.True(t, ok)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 4, rec.Batting.AB)
	assert.Equal(t, 27, rec.FieldingAt(models.Pitcher).Outs)
	assert.Equal(t, 36, rec.Pitching.BF)
}
