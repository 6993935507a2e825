package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-research-be/internal/dto"
	"ai-research-be/internal/repository/memory"
	"ai-research-be/pkg/research"
	"ai-research-be/pkg/synthesis"
)

const synthesisJSON = `{
	"company_overview": "Acme makes anvils",
	"products_services": ["Anvils"],
	"market_position": "Leader",
	"recent_developments": ["New factory"],
	"key_insights": ["Growing"],
	"potential_conflicts": [],
	"data_quality": "High"
}`

func newResearchFixture(t *testing.T, provider *fakeLLM) (IResearchService, *memory.SessionRepository, *gochannel.GoChannel) {
	t.Helper()
	repo := memory.NewSessionRepository()
	// Block each Publish until the subscriber acks so frames are observed in
	// publish order; the default config delivers each message in its own
	// goroutine and does not preserve cross-message ordering.
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	collector := research.NewCollector(&fakeSearch{}, 10)
	synthesizer := synthesis.NewSynthesizer(provider)
	svc := NewResearchService(collector, synthesizer, repo, pubSub, nil, nopLogger{})
	return svc, repo, pubSub
}

func collectFrames(t *testing.T, ctx context.Context, pubSub *gochannel.GoChannel, sessionId string) <-chan dto.ProgressFrame {
	t.Helper()
	messages, err := pubSub.Subscribe(ctx, ProgressTopic(sessionId))
	require.NoError(t, err)

	frames := make(chan dto.ProgressFrame, 16)
	go func() {
		for msg := range messages {
			var frame dto.ProgressFrame
			if err := json.Unmarshal(msg.Payload, &frame); err == nil {
				frames <- frame
			}
			msg.Ack()
		}
	}()
	return frames
}

func nextFrame(t *testing.T, frames <-chan dto.ProgressFrame) dto.ProgressFrame {
	t.Helper()
	select {
	case frame := <-frames:
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for progress frame")
		return dto.ProgressFrame{}
	}
}

func TestResearchPopulatesSessionAndEmitsProgress(t *testing.T) {
	provider := &fakeLLM{
		generateResponses: []string{
			synthesisJSON,
			`["Revenue figures differ between sources"]`,
		},
	}
	svc, repo, pubSub := newResearchFixture(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := collectFrames(t, ctx, pubSub, "s1")

	res, err := svc.Research(context.Background(), &dto.ResearchRequest{CompanyName: "Acme", SessionId: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "Acme", res.CompanyName)
	assert.Equal(t, 5, res.TotalSources)
	assert.Equal(t, 5, res.SourcesAnalyzed)
	assert.Contains(t, res.Summary, "Company Research Summary")
	assert.Equal(t, []string{"Revenue figures differ between sources"}, res.Conflicts)

	// Conflicts overwrite whatever the synthesis call produced.
	assert.Equal(t, []string{"Revenue figures differ between sources"}, []string(res.Synthesis.PotentialConflicts))

	session, found := repo.Get("s1")
	require.True(t, found)
	require.NotNil(t, session.Context.ResearchData)
	require.NotNil(t, session.Context.SynthesizedData)
	assert.Equal(t, "Acme makes anvils", session.Context.SynthesizedData.CompanyOverview)

	assert.Equal(t, "status", nextFrame(t, frames).Type)
	assert.Equal(t, "status", nextFrame(t, frames).Type)
	assert.Equal(t, "conflict", nextFrame(t, frames).Type)
	complete := nextFrame(t, frames)
	assert.Equal(t, "research_complete", complete.Type)
	assert.Contains(t, complete.Content, "Company Research Summary")
}

func TestResearchWithoutConflictsSkipsConflictFrame(t *testing.T) {
	provider := &fakeLLM{
		generateResponses: []string{
			synthesisJSON,
			`[]`,
		},
	}
	svc, _, pubSub := newResearchFixture(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := collectFrames(t, ctx, pubSub, "s2")

	res, err := svc.Research(context.Background(), &dto.ResearchRequest{CompanyName: "Acme", SessionId: "s2"})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)

	assert.Equal(t, "status", nextFrame(t, frames).Type)
	assert.Equal(t, "status", nextFrame(t, frames).Type)
	assert.Equal(t, "research_complete", nextFrame(t, frames).Type)
}

func TestResearchDegradedSynthesisStillStored(t *testing.T) {
	repo := memory.NewSessionRepository()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	collector := research.NewCollector(&fakeSearch{err: context.DeadlineExceeded}, 10)
	synthesizer := synthesis.NewSynthesizer(&fakeLLM{})
	svc := NewResearchService(collector, synthesizer, repo, pubSub, nil, nopLogger{})

	res, err := svc.Research(context.Background(), &dto.ResearchRequest{CompanyName: "Acme", SessionId: "s3"})
	require.NoError(t, err)

	assert.Equal(t, 0, res.SourcesAnalyzed)
	assert.True(t, res.Synthesis.Degraded())

	session, found := repo.Get("s3")
	require.True(t, found)
	assert.NotNil(t, session.Context.SynthesizedData)
}
