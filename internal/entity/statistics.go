package entity

// Statistics are the finished games of a single player.
type Statistics struct {
	GamesPlayed int64 `json:"games_played"`
	PlayerWins  int64 `json:"player_wins"`
	BotWins     int64 `json:"bot_wins"`
	Draws       int64 `json:"draws"`
}
