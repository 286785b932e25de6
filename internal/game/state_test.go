package game_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"dnd-server/internal/domain"
	"dnd-server/internal/game"
)

func TestStateConnectDisconnect(t *testing.T) {
	s := game.NewState()

	s.Connect("thorn_1")
	s.Connect("mira_2")
	assert.Equal(t, 2, s.PlayerCount())
	assert.True(t, s.Connected("thorn_1"))

	s.Disconnect("thorn_1")
	assert.Equal(t, 1, s.PlayerCount())
	assert.False(t, s.Connected("thorn_1"))

	// Повторный disconnect безвреден
	s.Disconnect("thorn_1")
	s.Disconnect("never_connected")
	assert.Equal(t, 1, s.PlayerCount())
}

func TestStateHistoryBound(t *testing.T) {
	s := game.NewState()
	s.Connect("thorn_1")

	for i := 0; i < 25; i++ {
		s.RecordTurn("thorn_1", domain.Turn{Type: domain.TurnAction, Content: fmt.Sprintf("turn %d", i)})
	}

	history := s.History("thorn_1")
	assert.Len(t, history, domain.HistoryLimit)
	// Остаются последние записи в исходном порядке
	assert.Equal(t, "turn 15", history[0].Content)
	assert.Equal(t, "turn 24", history[len(history)-1].Content)
}

func TestStateHistoryClearedOnDisconnect(t *testing.T) {
	s := game.NewState()
	s.Connect("thorn_1")
	s.RecordTurn("thorn_1", domain.Turn{Type: domain.TurnAction, Content: "I attack"})

	s.Disconnect("thorn_1")
	s.Connect("thorn_1")

	assert.Empty(t, s.History("thorn_1"))
}

func TestStateRecordTurnUnknownPlayer(t *testing.T) {
	s := game.NewState()

	s.RecordTurn("ghost", domain.Turn{Type: domain.TurnAction, Content: "boo"})

	assert.Empty(t, s.History("ghost"))
	assert.Equal(t, 0, s.PlayerCount())
}

func TestStateFindPlayerByCharacter(t *testing.T) {
	s := game.NewState()

	s.Connect("a_1")
	s.SetCharacter("a_1", domain.CharacterSheet{Name: "Thorn"})
	s.Connect("b_2")
	s.SetCharacter("b_2", domain.CharacterSheet{Name: "Mira"})
	s.Connect("c_3")
	s.SetCharacter("c_3", domain.CharacterSheet{Name: "Thorn"})

	// При совпадении имен выигрывает подключившийся раньше
	assert.Equal(t, "a_1", s.FindPlayerByCharacter("Thorn"))
	assert.Equal(t, "b_2", s.FindPlayerByCharacter("Mira"))
	assert.Equal(t, "", s.FindPlayerByCharacter("Nobody"))

	s.Disconnect("a_1")
	assert.Equal(t, "c_3", s.FindPlayerByCharacter("Thorn"))
}

func TestStateCounters(t *testing.T) {
	s := game.NewState()
	s.Connect("a_1")

	s.IncrementEncounters()
	s.IncrementEncounters()
	s.IncrementRolls()

	snapshot := s.Snapshot()
	assert.Equal(t, 1, snapshot.Players)
	assert.Equal(t, int64(2), snapshot.Encounters)
	assert.Equal(t, int64(1), snapshot.Rolls)

	// Счетчики переживают отключение игроков
	s.Disconnect("a_1")
	snapshot = s.Snapshot()
	assert.Equal(t, 0, snapshot.Players)
	assert.Equal(t, int64(2), snapshot.Encounters)
}

func TestStateHistoryIsCopy(t *testing.T) {
	s := game.NewState()
	s.Connect("a_1")
	s.RecordTurn("a_1", domain.Turn{Type: domain.TurnAction, Content: "original"})

	history := s.History("a_1")
	history[0].Content = "mutated"

	assert.Equal(t, "original", s.History("a_1")[0].Content)
}
