package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gamesFinished counts finished games by result from the player's point of view.
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_finished_total",
		Help: "Finished games by result",
	}, []string{"result"})

	// botMoveDuration tracks how long the bot spends choosing a move.
	botMoveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tictactoe_bot_move_duration_seconds",
		Help:    "Bot move selection duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	}, []string{"difficulty"})
)

func GameFinished(result string) {
	gamesFinished.WithLabelValues(result).Inc()
}

func ObserveBotMove(difficulty string, duration time.Duration) {
	botMoveDuration.WithLabelValues(difficulty).Observe(duration.Seconds())
}
