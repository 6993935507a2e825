package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-research-be/internal/dto"
	"ai-research-be/internal/pkg/logger"
	"ai-research-be/internal/repository/memory"
	"ai-research-be/pkg/llm"
)

const chatSystemPrompt = `You are a professional Company Research Assistant. Your role is to:
1. Help users research companies through natural conversation
2. Ask clarifying questions when needed
3. Gather and synthesize information from multiple sources
4. Provide updates during research process
5. Generate comprehensive account plans
6. Allow users to update specific sections of account plans

Be conversational, professional, and thorough. When you need more information, ask specific questions.
When you find conflicting information, alert the user and ask if they want you to investigate further.
`

const intentPromptTemplate = `Analyze this user message and determine their intent.
Possible intents: research_company, generate_plan, update_plan, ask_question, general_chat

User message: %s

Return a JSON object with:
- intent: the main intent
- company_name: extracted company name (if any)
- section: account plan section to update (if updating)
- details: any additional relevant details

Return only valid JSON, nothing else.`

type IChatService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	Reset(ctx context.Context, sessionId string) error
}

type chatService struct {
	llmProvider llm.LLMProvider
	sessionRepo *memory.SessionRepository
	log         logger.ILogger
}

func NewChatService(llmProvider llm.LLMProvider, sessionRepo *memory.SessionRepository, log logger.ILogger) IChatService {
	return &chatService{
		llmProvider: llmProvider,
		sessionRepo: sessionRepo,
		log:         log,
	}
}

func (c *chatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := defaultSessionId(request.SessionId)
	session := c.sessionRepo.GetOrCreate(sessionId)

	session.Lock()
	defer session.Unlock()

	intent := c.extractIntent(ctx, request.Message)

	messages := []llm.Message{{Role: "system", Content: chatSystemPrompt}}
	if !session.Context.Empty() {
		if contextJson, err := json.MarshalIndent(session.Context, "", "  "); err == nil {
			messages = append(messages, llm.Message{
				Role:    "system",
				Content: fmt.Sprintf("\n\nCurrent Context:\n%s", contextJson),
			})
		}
	}

	session.AddMessage("user", request.Message)
	messages = append(messages, session.History...)

	response, err := c.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(2000),
	)
	if err != nil {
		// Provider failures surface as in-band chat text, never as a
		// transport error.
		c.log.Warn("ChatService", "LLM chat call failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		response = fmt.Sprintf("Error getting response: %s", err.Error())
	} else {
		session.AddMessage("assistant", response)
	}

	return &dto.ChatResponse{
		Response:  response,
		Intent:    intent,
		Context:   &session.Context,
		SessionId: sessionId,
	}, nil
}

func (c *chatService) Reset(ctx context.Context, sessionId string) error {
	c.sessionRepo.Reset(defaultSessionId(sessionId))
	return nil
}

// extractIntent classifies the message with a low-temperature JSON call.
// Any failure degrades to general_chat rather than blocking the reply.
func (c *chatService) extractIntent(ctx context.Context, message string) *dto.IntentResult {
	prompt := fmt.Sprintf(intentPromptTemplate, message)

	raw, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		return &dto.IntentResult{Intent: "general_chat", Error: err.Error()}
	}

	var result dto.IntentResult
	if err := json.Unmarshal([]byte(llm.CleanResponse(raw)), &result); err != nil {
		return &dto.IntentResult{Intent: "general_chat", Error: err.Error()}
	}
	return &result
}

func defaultSessionId(sessionId string) string {
	if sessionId == "" {
		return "default"
	}
	return sessionId
}
