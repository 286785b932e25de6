package domain

// TurnType различает реплики игрока и ответы гейм-мастера в истории диалога.
type TurnType string

const (
	// TurnAction — свободный текст действия игрока.
	TurnAction TurnType = "action"
	// TurnGMResponse — сгенерированный ответ гейм-мастера.
	TurnGMResponse TurnType = "gm_response"
)

// Turn представляет одну реплику в истории диалога игрока с гейм-мастером.
type Turn struct {
	Type    TurnType `json:"type"`
	Content string   `json:"content"`
}

// HistoryLimit задает максимальную длину истории диалога, передаваемой
// провайдеру: хранятся только последние 10 реплик.
const HistoryLimit = 10
