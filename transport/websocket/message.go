package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/transport/status"
)

const (
	actionGameNew    = "game:new"
	actionGameTurn   = "game:turn"
	actionGameReset  = "game:reset"
	actionGameGet    = "game:get"
	actionStatsGet   = "stats:get"
	actionStatsReset = "stats:reset"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload sent by the client. Fields are read per action.
type Request struct {
	First      string `json:"first,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Cell       *int   `json:"cell,omitempty"`
}

// Response is the payload sent back for the action of the same name.
type Response struct {
	Game        *entity.Game         `json:"game,omitempty"`
	Probability *service.Probability `json:"probability,omitempty"`
	Statistics  *entity.Statistics   `json:"statistics,omitempty"`
	Error       string               `json:"error,omitempty"`
}

func gameResponse(game *entity.Game) Response {
	return Response{
		Game:        game,
		Probability: service.ProbabilityOf(game),
	}
}

func newMessage(action string, response Response) Message {
	payload, err := json.Marshal(response)
	if err != nil {
		payload, _ = json.Marshal(Response{Error: status.Message(err)})
	}

	return Message{Action: action, Payload: payload}
}

func errorMessage(action string, err error) Message {
	return newMessage(action, Response{Error: status.Message(err)})
}
