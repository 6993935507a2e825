package dto

import "ai-research-be/pkg/store"

// --- Conversational Agent ---

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id"`
}

type ChatResponse struct {
	Response  string         `json:"response"`
	Intent    *IntentResult  `json:"intent,omitempty"`
	Context   *store.Context `json:"context,omitempty"`
	SessionId string         `json:"session_id"`
}

type ResetChatRequest struct {
	SessionId string `json:"session_id"`
}

// IntentResult is the parsed routing decision for a user message.
type IntentResult struct {
	Intent      string `json:"intent"`
	CompanyName string `json:"company_name,omitempty"`
	Section     string `json:"section,omitempty"`
	Details     string `json:"details,omitempty"`
	Error       string `json:"error,omitempty"`
}
