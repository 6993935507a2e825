package service

import (
	"context"
	"strings"

	"ai-research-be/pkg/llm"
	"ai-research-be/pkg/search"
)

// fakeLLM scripts provider behavior per call site. Generate consumes
// responses in order so a test can script intent + synthesis + conflict
// calls independently.
type fakeLLM struct {
	generateResponses []string
	generateErr       error
	chatResponse      string
	chatErr           error

	prompts   []string
	chatCalls [][]llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	copied := make([]llm.Message, len(messages))
	copy(copied, messages)
	f.chatCalls = append(f.chatCalls, copied)
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatResponse, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.generateErr != nil {
		return "", f.generateErr
	}
	if len(f.generateResponses) == 0 {
		return "", nil
	}
	next := f.generateResponses[0]
	f.generateResponses = f.generateResponses[1:]
	return next, nil
}

// fakeSearch returns one canned snippet per query.
type fakeSearch struct {
	err error
}

func (f *fakeSearch) Search(ctx context.Context, query string, count int) ([]search.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []search.Result{
		{Title: "Result for " + query, Link: "https://example.com/" + strings.ReplaceAll(query, " ", "-"), Snippet: "snippet about " + query},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
