package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-research-be/internal/dto"
	"ai-research-be/internal/pkg/logger"
	"ai-research-be/internal/repository/memory"
	"ai-research-be/pkg/events"
	"ai-research-be/pkg/nats"
	"ai-research-be/pkg/research"
	"ai-research-be/pkg/synthesis"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ProgressTopic is the per-session watermill topic live research updates
// are published on.
func ProgressTopic(sessionId string) string {
	return "research.progress." + sessionId
}

type IResearchService interface {
	Research(ctx context.Context, request *dto.ResearchRequest) (*dto.ResearchResponse, error)
}

type researchService struct {
	collector      *research.Collector
	synthesizer    *synthesis.Synthesizer
	sessionRepo    *memory.SessionRepository
	pubSub         *gochannel.GoChannel
	eventPublisher *nats.Publisher
	log            logger.ILogger
}

func NewResearchService(
	collector *research.Collector,
	synthesizer *synthesis.Synthesizer,
	sessionRepo *memory.SessionRepository,
	pubSub *gochannel.GoChannel,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IResearchService {
	return &researchService{
		collector:      collector,
		synthesizer:    synthesizer,
		sessionRepo:    sessionRepo,
		pubSub:         pubSub,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (r *researchService) Research(ctx context.Context, request *dto.ResearchRequest) (*dto.ResearchResponse, error) {
	sessionId := defaultSessionId(request.SessionId)

	r.publishProgress(sessionId, dto.ProgressFrame{
		Type:    "status",
		Content: fmt.Sprintf("Researching %s...", request.CompanyName),
	})

	batch := r.collector.Collect(ctx, request.CompanyName)

	r.publishProgress(sessionId, dto.ProgressFrame{
		Type:    "status",
		Content: "Synthesizing findings...",
	})

	record := r.synthesizer.Synthesize(ctx, batch)

	conflicts := r.synthesizer.DetectConflicts(ctx, batch)
	if len(conflicts) > 0 {
		record.PotentialConflicts = conflicts
		r.publishProgress(sessionId, dto.ProgressFrame{
			Type:    "conflict",
			Content: conflicts,
		})
	}

	summary := synthesis.Summary(record)

	session := r.sessionRepo.GetOrCreate(sessionId)
	session.Lock()
	session.Context.ResearchData = batch
	session.Context.SynthesizedData = record
	session.Unlock()

	r.publishProgress(sessionId, dto.ProgressFrame{
		Type:    "research_complete",
		Content: summary,
		Data:    record,
	})

	if r.eventPublisher != nil {
		evt := events.NewResearchCompletedEvent(sessionId, request.CompanyName, record.SourcesAnalyzed)
		// Auxiliary event, a NATS outage must not fail the request.
		if err := r.eventPublisher.Publish(ctx, evt); err != nil {
			r.log.Warn("ResearchService", "Failed to publish RESEARCH_COMPLETED event", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	r.log.Info("ResearchService", "Research completed", map[string]interface{}{
		"session_id":       sessionId,
		"company_name":     request.CompanyName,
		"total_sources":    batch.TotalSources,
		"sources_analyzed": record.SourcesAnalyzed,
	})

	return &dto.ResearchResponse{
		CompanyName:     request.CompanyName,
		Summary:         summary,
		Synthesis:       record,
		Conflicts:       conflicts,
		TotalSources:    batch.TotalSources,
		SourcesAnalyzed: record.SourcesAnalyzed,
		SessionId:       sessionId,
	}, nil
}

func (r *researchService) publishProgress(sessionId string, frame dto.ProgressFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := r.pubSub.Publish(ProgressTopic(sessionId), msg); err != nil {
		r.log.Warn("ResearchService", "Failed to publish progress frame", map[string]interface{}{
			"session_id": sessionId,
			"type":       frame.Type,
			"error":      err.Error(),
		})
	}
}
