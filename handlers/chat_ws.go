package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"serenity/logger"
	"serenity/models"
	"serenity/services"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// 客户端发来的事件
const (
	eventSetEmotion  = "set_emotion"
	eventSendMessage = "send_message"
)

// 服务端推送的事件
const (
	eventConnected  = "connected"
	eventEmotionSet = "emotion_set"
	eventTyping     = "typing"
	eventBotMessage = "bot_message"
	eventError      = "error"
)

// wsInbound 客户端消息
type wsInbound struct {
	Type    string `json:"type"`
	Emotion string `json:"emotion,omitempty"`
	Message string `json:"message,omitempty"`
}

// wsOutbound 服务端消息
type wsOutbound struct {
	Type            string                       `json:"type"`
	Message         string                       `json:"message,omitempty"`
	Emotion         string                       `json:"emotion,omitempty"`
	Status          *bool                        `json:"status,omitempty"`
	Recommendations *models.RecommendationBundle `json:"recommendations,omitempty"`
	Keywords        []string                     `json:"keywords,omitempty"`
}

func typing(on bool) wsOutbound {
	return wsOutbound{Type: eventTyping, Status: &on}
}

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      h.checkOrigin,
	}
}

// checkOrigin 仅允许配置中的来源，未配置时不限制
func (h *Handler) checkOrigin(r *http.Request) bool {
	origins := h.cfg.HTTP.CORSAllowedOrigins
	if len(origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logger.Warn("WebSocket connection rejected", "origin", origin)
	return false
}

// ChatWebSocketHandler godoc
// @Summary 聊天WebSocket
// @Description 客户端发送set_emotion或send_message事件，服务端推送connected、emotion_set、typing、bot_message、error事件
// @Tags 聊天
// @Router /ws/chat [get]
func (h *Handler) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	up := h.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{
		h:       h,
		conn:    conn,
		send:    make(chan wsOutbound, 16),
		done:    make(chan struct{}),
		session: services.NewChatSession(uuid.NewString(), h.cfg.Chat.TranscriptLimit, h.cfg.Chat.CategoryLimit),
	}
	h.metrics.WSConnected()
	logger.Info("Client connected", "conn", c.session.ID, "remote", r.RemoteAddr)

	c.push(wsOutbound{Type: eventConnected, Message: "Connected to Stress Relief Assistant"})
	go c.writePump()
	c.readPump()
}

// wsClient 单个WebSocket连接，连接断开后对话状态随之丢弃
type wsClient struct {
	h       *Handler
	conn    *websocket.Conn
	send    chan wsOutbound
	done    chan struct{} // writePump退出时关闭
	session *services.ChatSession
}

// push 投递一条消息，写端已退出时丢弃
func (c *wsClient) push(out wsOutbound) {
	select {
	case c.send <- out:
	case <-c.done:
	}
}

// readPump 顺序处理客户端消息，返回时关闭发送通道
func (c *wsClient) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		close(c.send)
		c.h.metrics.WSDisconnected()
		logger.Info("Client disconnected", "conn", c.session.ID)
	}()

	c.conn.SetReadLimit(c.h.cfg.Chat.MaxMessageBytes)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Unexpected websocket close", "conn", c.session.ID, "error", err)
			}
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(data, &msg); err != nil {
			c.push(wsOutbound{Type: eventError, Message: "invalid message"})
			continue
		}
		c.dispatch(ctx, msg)
	}
}

func (c *wsClient) dispatch(ctx context.Context, msg wsInbound) {
	switch msg.Type {
	case eventSetEmotion:
		emotion := msg.Emotion
		if emotion == "" {
			emotion = "neutral"
		}
		c.session.SetEmotion(emotion)
		logger.Info("Emotion set", "conn", c.session.ID, "emotion", emotion)
		c.push(wsOutbound{Type: eventEmotionSet, Emotion: emotion})

	case eventSendMessage:
		message := strings.TrimSpace(msg.Message)
		if message == "" {
			return
		}
		c.push(typing(true))
		reply, err := c.h.recommender.Handle(ctx, message, "", c.session)
		c.push(typing(false))
		if err != nil {
			logger.Error("Error processing message", "conn", c.session.ID, "error", err)
			fallback := c.h.recommender.FallbackBundle()
			c.push(wsOutbound{
				Type:            eventBotMessage,
				Message:         "I understand you're going through a tough time. Let me share some resources that might help.",
				Recommendations: &fallback,
				Keywords:        []string{},
			})
			return
		}
		c.h.metrics.ChatMessage("websocket")
		c.push(wsOutbound{
			Type:            eventBotMessage,
			Message:         reply.Message,
			Recommendations: &reply.Recommendations,
			Keywords:        reply.Keywords,
		})

	default:
		c.push(wsOutbound{Type: eventError, Message: "unknown event type: " + msg.Type})
	}
}

// writePump 串行写出消息并定期发送ping
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		_ = c.conn.Close()
	}()

	for {
		select {
		case out, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(out); err != nil {
				logger.Warn("WebSocket write failed", "conn", c.session.ID, "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
