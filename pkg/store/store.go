package store

import (
	"sync"

	"ai-research-be/pkg/llm"
	"ai-research-be/pkg/plan"
	"ai-research-be/pkg/research"
	"ai-research-be/pkg/synthesis"
)

// Context is the per-session mailbox that threads pipeline artifacts between
// independently-invoked stages: research fills ResearchData and
// SynthesizedData, plan generation fills AccountPlan.
type Context struct {
	ResearchData    *research.Batch   `json:"research_data,omitempty"`
	SynthesizedData *synthesis.Record `json:"synthesized_data,omitempty"`
	AccountPlan     plan.Document     `json:"account_plan,omitempty"`
}

// Empty reports whether no pipeline stage has produced anything yet.
func (c *Context) Empty() bool {
	return c.ResearchData == nil && c.SynthesizedData == nil && c.AccountPlan == nil
}

// Session is the unit of conversational and research state isolation, keyed
// by a caller-supplied opaque identifier. Concurrent requests for the same
// session id are serialized through the session lock; distinct sessions never
// share state.
type Session struct {
	ID      string        `json:"id"`
	History []llm.Message `json:"conversation_history"`
	Context Context       `json:"context"`

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AddMessage appends to the conversation history. Callers hold the session
// lock.
func (s *Session) AddMessage(role, content string) {
	s.History = append(s.History, llm.Message{Role: role, Content: content})
}

// Clear empties conversation history and pipeline context, keeping the
// session entry itself alive.
func (s *Session) Clear() {
	s.History = nil
	s.Context = Context{}
}
