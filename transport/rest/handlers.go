package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/transport/session"
	"github.com/rocketscienceinc/tictactoe-ai/transport/status"
)

type gameResponse struct {
	Game        *entity.Game         `json:"game"`
	Probability *service.Probability `json:"probability"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) startGame(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	var options service.GameOptions
	if err := decodeBody(r, &options); err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.gamePlay.StartGame(r.Context(), playerID, options)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameResponse(game))
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	game, err := that.gamePlay.GetGame(r.Context(), playerID)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	var request turnRequest
	if err := decodeBody(r, &request); err != nil {
		that.writeError(w, r, err)
		return
	}

	if request.Cell == nil {
		that.writeError(w, r, fmt.Errorf("%w: cell is required", status.ErrInvalidRequest))
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), playerID, *request.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Server) resetGame(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	if err := that.gamePlay.ResetGame(r.Context(), playerID); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) probability(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	probability, err := that.gamePlay.Probability(r.Context(), playerID)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, probability)
}

func (that *Server) getStatistics(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	stats, err := that.gamePlay.GetStatistics(r.Context(), playerID)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (that *Server) resetStatistics(w http.ResponseWriter, r *http.Request) {
	playerID := session.Ensure(w, r)

	if err := that.gamePlay.ResetStatistics(r.Context(), playerID); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func newGameResponse(game *entity.Game) gameResponse {
	return gameResponse{
		Game:        game,
		Probability: service.ProbabilityOf(game),
	}
}

// decodeBody - decodes an optional JSON body into v.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return fmt.Errorf("%w: %w", status.ErrInvalidRequest, err)
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := status.Of(err)
	if code >= http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	writeJSON(w, code, errorResponse{Error: status.Message(err)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
