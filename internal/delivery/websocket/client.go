package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Время, разрешенное для записи сообщения клиенту.
	writeWait = 10 * time.Second
	// Время, разрешенное для чтения следующего pong сообщения от клиента.
	pongWait = 60 * time.Second
	// Отправлять пинги клиенту с этим периодом. Должно быть меньше pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Максимальный размер сообщения, разрешенный от клиента.
	maxMessageSize = 64 * 1024
)

// Client представляет одно WebSocket соединение игрока. Все исходящие
// сообщения проходят через канал send, запись выполняет единственная
// горутина writePump.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	closer sync.Once

	// playerID присваивается после character_created, до этого пустой.
	playerID string
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
	}
}

// close помечает соединение завершенным. Ответы провайдера, пришедшие
// после этого момента, отбрасываются в enqueue.
func (c *Client) close() {
	c.closer.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// enqueue сериализует сообщение и ставит его в очередь отправки.
// Возвращает false, если соединение уже завершено.
func (c *Client) enqueue(logger zerolog.Logger, msg any) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal outgoing message")
		return false
	}

	select {
	case <-c.done:
		logger.Debug().Msg("connection closed, dropping outgoing message")
		return false
	case c.send <- payload:
		return true
	}
}

// writePump откачивает сообщения из канала send в WebSocket соединение
// и периодически пингует клиента.
func (c *Client) writePump(logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
		logger.Debug().Msg("writePump finished")
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn().Err(err).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn().Err(err).Msg("failed to send ping")
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
