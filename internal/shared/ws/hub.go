// ============================================================================
// WEBSOCKET HUB — живой фид рекламных матчей для ops-клиентов
// ============================================================================
//
// Hub управляет WebSocket соединениями ops-дашборда:
// 1. Регистрация / отключение клиентов
// 2. Broadcast каждого опубликованного матча всем подключенным
// 3. Поддержание соединения активным (ping/pong)
//
// Клиент ДОЛЖЕН аутентифицироваться JWT токеном в течение 5 секунд
// после подключения, иначе соединение закрывается.
//
// ============================================================================

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/vismithaN/advertisement/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// authTimeout — максимальное время ожидания аутентификации
	authTimeout = 5 * time.Second

	// pingInterval — как часто сервер отправляет ping клиенту
	pingInterval = 30 * time.Second

	// pongWait — максимальное время ожидания pong от клиента
	pongWait = 60 * time.Second

	// maxMessageSize — максимальный размер входящего сообщения
	maxMessageSize = 4096

	// writeWait — таймаут на отправку сообщения
	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origin once the ops dashboard host is fixed
		return true
	},
}

// AuthFunc — функция для валидации JWT токена.
// Возвращает: subject, role, error.
type AuthFunc func(token string) (subject, role string, err error)

// Client представляет одно WebSocket соединение
type Client struct {
	ID      string
	Subject string
	Role    string
	conn    *websocket.Conn
	send    chan []byte
	hub     *Hub
	log     *logger.Logger
}

// Hub управляет всеми активными WebSocket соединениями
type Hub struct {
	clients    map[string]*Client
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	authFunc   AuthFunc
	log        *logger.Logger
}

// NewHub создает новый WebSocket Hub.
// После создания нужно запустить hub.Run(ctx) в горутине.
func NewHub(authFunc AuthFunc, log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 10),
		unregister: make(chan *Client, 10),
		broadcast:  make(chan []byte, 256),
		authFunc:   authFunc,
		log:        log,
	}
}

// Run обрабатывает регистрацию, отключение и broadcast. Блокирует до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			h.mu.Unlock()
			h.log.Info(logger.Entry{
				Action:  "ws_client_registered",
				Message: c.Subject,
				Additional: map[string]any{
					"client_id": c.ID,
					"role":      c.Role,
				},
			})

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.ID]; ok {
				delete(h.clients, c.ID)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// клиент не успевает читать — пропускаем
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast отправляет сообщение всем подключенным клиентам
func (h *Hub) Broadcast(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- b:
	default:
		h.log.Warn(logger.Entry{Action: "ws_broadcast_dropped", Message: "broadcast buffer full"})
	}
	return nil
}

// ClientCount возвращает число активных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		_ = c.conn.Close()
		close(c.send)
		delete(h.clients, id)
	}
}

// authMessage — первое сообщение клиента после подключения
type authMessage struct {
	Type  string `json:"type"` // "auth"
	Token string `json:"token"`
}

// ServeWS апгрейдит HTTP запрос до WebSocket и запускает клиента.
// Протокол: клиент сразу отправляет {"type":"auth","token":"..."}.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "ws_upgrade_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	// Ждем auth сообщение
	_ = conn.SetReadDeadline(time.Now().Add(authTimeout))
	conn.SetReadLimit(maxMessageSize)

	var am authMessage
	if err := conn.ReadJSON(&am); err != nil || am.Type != "auth" {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "auth required"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	subject, role, err := h.authFunc(am.Token)
	if err != nil {
		h.log.Warn(logger.Entry{Action: "ws_auth_failed", Message: err.Error()})
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid token"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	client := &Client{
		ID:      uuid.New().String(),
		Subject: subject,
		Role:    role,
		conn:    conn,
		send:    make(chan []byte, 64),
		hub:     h,
		log:     h.log,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump читает входящие сообщения (только pong/закрытие; фид односторонний)
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump отправляет сообщения из канала send и периодические ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
