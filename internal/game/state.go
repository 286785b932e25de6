package game

import (
	"sync"
	"time"

	"dnd-server/internal/domain"
)

// Player — подключенный игрок в памяти сервера.
type Player struct {
	ID        string
	JoinedAt  time.Time
	Character *domain.CharacterSheet
}

// Snapshot — агрегированное состояние сервера, рассылаемое клиентам
// событием state_update.
type Snapshot struct {
	Players    int   `json:"players"`
	Encounters int64 `json:"encounters"`
	Rolls      int64 `json:"rolls"`
}

// State хранит все изменяемое состояние игровых сессий: подключенных
// игроков, их истории диалогов и счетчики. Все методы безопасны для
// конкурентного вызова из горутин соединений.
type State struct {
	mu            sync.RWMutex
	players       map[string]*Player
	order         []string // id игроков в порядке подключения
	conversations map[string][]domain.Turn
	encounters    int64
	rolls         int64
	startedAt     time.Time
}

// NewState создает пустое состояние сервера.
func NewState() *State {
	return &State{
		players:       make(map[string]*Player),
		conversations: make(map[string][]domain.Turn),
		startedAt:     time.Now(),
	}
}

// Connect регистрирует нового игрока.
func (s *State) Connect(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[playerID]; ok {
		return
	}
	s.players[playerID] = &Player{ID: playerID, JoinedAt: time.Now()}
	s.order = append(s.order, playerID)

	playersConnectedTotal.Inc()
	activePlayers.Set(float64(len(s.players)))
}

// Disconnect удаляет игрока вместе с его историей диалога. Повторный
// вызов для того же id безвреден.
func (s *State) Disconnect(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[playerID]; !ok {
		return
	}
	delete(s.players, playerID)
	delete(s.conversations, playerID)
	for i, id := range s.order {
		if id == playerID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	activePlayers.Set(float64(len(s.players)))
}

// SetCharacter привязывает лист персонажа к игроку. Для неизвестного
// игрока вызов игнорируется.
func (s *State) SetCharacter(playerID string, sheet domain.CharacterSheet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[playerID]; ok {
		p.Character = &sheet
	}
}

// Character возвращает лист персонажа игрока или nil.
func (s *State) Character(playerID string) *domain.CharacterSheet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.players[playerID]; ok {
		return p.Character
	}
	return nil
}

// Connected сообщает, подключен ли игрок.
func (s *State) Connected(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.players[playerID]
	return ok
}

// FindPlayerByCharacter возвращает id первого (в порядке подключения)
// игрока с персонажем указанного имени. Пустая строка — не найден.
func (s *State) FindPlayerByCharacter(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		p := s.players[id]
		if p.Character != nil && p.Character.Name == name {
			return id
		}
	}
	return ""
}

// RecordTurn добавляет реплику в историю игрока, сохраняя только
// последние HistoryLimit записей.
func (s *State) RecordTurn(playerID string, turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[playerID]; !ok {
		return
	}
	history := append(s.conversations[playerID], turn)
	if len(history) > domain.HistoryLimit {
		history = history[len(history)-domain.HistoryLimit:]
	}
	s.conversations[playerID] = history
}

// History возвращает копию истории диалога игрока.
func (s *State) History(playerID string) []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.conversations[playerID]
	out := make([]domain.Turn, len(history))
	copy(out, history)
	return out
}

// IncrementEncounters увеличивает счетчик начатых столкновений.
func (s *State) IncrementEncounters() {
	s.mu.Lock()
	s.encounters++
	s.mu.Unlock()

	encountersTotal.Inc()
}

// IncrementRolls увеличивает счетчик бросков костей.
func (s *State) IncrementRolls() {
	s.mu.Lock()
	s.rolls++
	s.mu.Unlock()

	rollsTotal.Inc()
}

// PlayerCount возвращает число подключенных игроков.
func (s *State) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// Snapshot возвращает агрегированное состояние для state_update.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Players:    len(s.players),
		Encounters: s.encounters,
		Rolls:      s.rolls,
	}
}

// Uptime возвращает время работы сервера.
func (s *State) Uptime() time.Duration {
	return time.Since(s.startedAt)
}
