package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	mockedService "github.com/rocketscienceinc/tictactoe-ai/mocks/service"
	"github.com/rocketscienceinc/tictactoe-ai/transport/session"
)

func newTestServer(t *testing.T) (http.Handler, *mockedService.MockGamePlayService) {
	t.Helper()

	gamePlay := mockedService.NewMockGamePlayService(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return New(logger, gamePlay).Router(), gamePlay
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "p1"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body.Error
}

func TestPing(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := serve(handler, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := serve(handler, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartGame(t *testing.T) {
	t.Run("Issues a session and returns the game", func(t *testing.T) {
		// Given: a request without a session cookie
		handler, gamePlay := newTestServer(t)
		game := entity.NewGame("g1", tictactoe.PlayerO, tictactoe.Easy)
		game.Board[0] = tictactoe.PlayerX
		game.Turn = tictactoe.PlayerO

		gamePlay.On("StartGame", mock.Anything, mock.AnythingOfType("string"), service.GameOptions{
			First:      entity.FirstBot,
			Difficulty: "easy",
		}).Return(game, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/game", strings.NewReader(`{"first":"bot","difficulty":"easy"}`))
		rec := httptest.NewRecorder()

		// When: starting a game
		handler.ServeHTTP(rec, req)

		// Then: a session cookie is issued with the new game and its estimate
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, rec.Result().Cookies(), 1)
		assert.Equal(t, session.CookieName, rec.Result().Cookies()[0].Name)

		var body gameResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, game, body.Game)
		require.NotNil(t, body.Probability)
		assert.InDelta(t, 100, body.Probability.Player+body.Probability.Bot+body.Probability.Draw, 1e-9)
	})

	t.Run("Empty body uses defaults", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("StartGame", mock.Anything, "p1", service.GameOptions{}).
			Return(entity.NewGame("g1", tictactoe.PlayerX, tictactoe.Hard), nil).Once()

		rec := serve(handler, http.MethodPost, "/api/game", "")

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("StartGame", mock.Anything, "p1", service.GameOptions{Difficulty: "legendary"}).
			Return(nil, fmt.Errorf("%w: %q", tictactoe.ErrUnknownDifficulty, "legendary")).Once()

		rec := serve(handler, http.MethodPost, "/api/game", `{"difficulty":"legendary"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "legendary")
	})
}

func TestMakeTurn(t *testing.T) {
	t.Run("Returns the updated game", func(t *testing.T) {
		// Given: an ongoing game
		handler, gamePlay := newTestServer(t)
		game := entity.NewGame("g1", tictactoe.PlayerX, tictactoe.Hard)
		game.Board = tictactoe.Board{tictactoe.PlayerX, tictactoe.EmptyCell, tictactoe.EmptyCell, tictactoe.EmptyCell, tictactoe.PlayerO}
		gamePlay.On("MakeTurn", mock.Anything, "p1", 0).Return(game, nil).Once()

		// When: the player takes cell 0
		rec := serve(handler, http.MethodPost, "/api/game/turn", `{"cell":0}`)

		// Then: the board comes back with the bot's reply
		require.Equal(t, http.StatusOK, rec.Code)

		var body gameResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, game.Board, body.Game.Board)
	})

	t.Run("Rejects malformed requests before the game is touched", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"cell":`, `{"cell":"four"}`} {
			handler, _ := newTestServer(t)

			rec := serve(handler, http.MethodPost, "/api/game/turn", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("Maps domain errors", func(t *testing.T) {
		cases := []struct {
			err  error
			want int
		}{
			{err: apperror.ErrCellOccupied, want: http.StatusConflict},
			{err: apperror.ErrGameFinished, want: http.StatusConflict},
			{err: apperror.ErrNoActiveGame, want: http.StatusNotFound},
			{err: entity.ErrInvalidCell, want: http.StatusBadRequest},
		}

		for _, tc := range cases {
			handler, gamePlay := newTestServer(t)
			gamePlay.On("MakeTurn", mock.Anything, "p1", 4).
				Return(nil, fmt.Errorf("failed to make turn: %w", tc.err)).Once()

			rec := serve(handler, http.MethodPost, "/api/game/turn", `{"cell":4}`)

			assert.Equal(t, tc.want, rec.Code, tc.err)
			assert.Contains(t, decodeError(t, rec), tc.err.Error())
		}
	})

	t.Run("Hides internal errors", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("MakeTurn", mock.Anything, "p1", 4).Return(nil, errors.New("redis down")).Once()

		rec := serve(handler, http.MethodPost, "/api/game/turn", `{"cell":4}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decodeError(t, rec))
	})
}

func TestGameLifecycle(t *testing.T) {
	t.Run("Get without a game", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("GetGame", mock.Anything, "p1").Return(nil, apperror.ErrNoActiveGame).Once()

		rec := serve(handler, http.MethodGet, "/api/game", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Reset", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("ResetGame", mock.Anything, "p1").Return(nil).Once()

		rec := serve(handler, http.MethodDelete, "/api/game", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Probability", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("Probability", mock.Anything, "p1").
			Return(&service.Probability{Player: 30, Bot: 20, Draw: 50}, nil).Once()

		rec := serve(handler, http.MethodGet, "/api/game/probability", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"player":30,"bot":20,"draw":50}`, rec.Body.String())
	})
}

func TestStatistics(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("GetStatistics", mock.Anything, "p1").
			Return(&entity.Statistics{GamesPlayed: 2, BotWins: 1, Draws: 1}, nil).Once()

		rec := serve(handler, http.MethodGet, "/api/stats", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var stats entity.Statistics
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
		assert.Equal(t, entity.Statistics{GamesPlayed: 2, BotWins: 1, Draws: 1}, stats)
	})

	t.Run("Reset", func(t *testing.T) {
		handler, gamePlay := newTestServer(t)
		gamePlay.On("ResetStatistics", mock.Anything, "p1").Return(nil).Once()

		rec := serve(handler, http.MethodDelete, "/api/stats", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
