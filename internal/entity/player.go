package entity

// Player is a browser session. GameID is empty when no game is in progress.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}
