package handler

import (
	"context"
	"encoding/json"
	"sync"

	"ai-research-be/internal/dto"
	"ai-research-be/internal/pkg/logger"
	"ai-research-be/internal/service"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// wsInbound is one client frame. Action defaults to "chat".
type wsInbound struct {
	Action      string `json:"action"`
	Message     string `json:"message"`
	CompanyName string `json:"company_name"`
}

// ResearchWSHandler serves the live research/chat socket. Progress frames
// published by the research service are forwarded to the client as they
// arrive, interleaved with direct chat responses.
type ResearchWSHandler struct {
	chatService     service.IChatService
	researchService service.IResearchService
	pubSub          *gochannel.GoChannel
	logger          logger.ILogger
}

func NewResearchWSHandler(
	chatService service.IChatService,
	researchService service.IResearchService,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
) *ResearchWSHandler {
	return &ResearchWSHandler{
		chatService:     chatService,
		researchService: researchService,
		pubSub:          pubSub,
		logger:          log,
	}
}

// ServeWs upgrades the connection and runs the session loop.
func (h *ResearchWSHandler) ServeWs(c *fiber.Ctx) error {
	sessionId := c.Params("sessionId")
	if sessionId == "" {
		sessionId = "default"
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ResearchWSHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
			h.serve(conn, sessionId)
			h.logger.Info("ResearchWSHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ResearchWSHandler) serve(conn *websocket.Conn, sessionId string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads and the progress forwarder both write to the socket.
	var writeMu sync.Mutex
	writeFrame := func(payload []byte) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("ResearchWSHandler", "WebSocket write failed", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	// Forward live progress frames for this session.
	messages, err := h.pubSub.Subscribe(ctx, service.ProgressTopic(sessionId))
	if err != nil {
		h.logger.Error("ResearchWSHandler", "Failed to subscribe to progress topic", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}
	go func() {
		for msg := range messages {
			writeFrame(msg.Payload)
			msg.Ack()
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var inbound wsInbound
		if err := json.Unmarshal(raw, &inbound); err != nil {
			h.logger.Warn("ResearchWSHandler", "Malformed client frame", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
			continue
		}

		action := inbound.Action
		if action == "" {
			action = "chat"
		}

		switch action {
		case "chat":
			res, err := h.chatService.Chat(ctx, &dto.ChatRequest{
				Message:   inbound.Message,
				SessionId: sessionId,
			})
			if err != nil {
				h.logger.Error("ResearchWSHandler", "Chat failed", map[string]interface{}{
					"session_id": sessionId,
					"error":      err.Error(),
				})
				continue
			}
			payload, _ := json.Marshal(dto.ProgressFrame{
				Type:    "response",
				Content: res.Response,
			})
			writeFrame(payload)

		case "research":
			companyName := inbound.CompanyName
			if companyName == "" {
				companyName = inbound.Message
			}
			// Interim frames reach the client through the progress
			// subscription, the final payload is in research_complete.
			if _, err := h.researchService.Research(ctx, &dto.ResearchRequest{
				CompanyName: companyName,
				SessionId:   sessionId,
			}); err != nil {
				h.logger.Error("ResearchWSHandler", "Research failed", map[string]interface{}{
					"session_id": sessionId,
					"error":      err.Error(),
				})
			}
		}
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *ResearchWSHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/:sessionId", h.ServeWs)
}
