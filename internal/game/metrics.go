package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	playersConnectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_players_connected_total",
		Help: "Total number of player connections.",
	})

	encountersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_encounters_total",
		Help: "Total number of started encounters.",
	})

	rollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_dice_rolls_total",
		Help: "Total number of dice rolls.",
	})

	activePlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "game_active_players",
		Help: "Number of currently connected players.",
	})
)
