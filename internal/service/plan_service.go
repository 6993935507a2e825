package service

import (
	"context"
	"errors"
	"fmt"

	"ai-research-be/internal/dto"
	"ai-research-be/internal/pkg/logger"
	"ai-research-be/internal/pkg/serverutils"
	"ai-research-be/internal/repository/memory"
	"ai-research-be/pkg/events"
	"ai-research-be/pkg/nats"
	"ai-research-be/pkg/plan"
)

type IPlanService interface {
	Generate(ctx context.Context, request *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
	UpdateSection(ctx context.Context, request *dto.UpdateSectionRequest) (*dto.UpdateSectionResponse, error)
	List(ctx context.Context) (*dto.PlanListResponse, error)
	Get(ctx context.Context, filename string) (*dto.PlanDetailResponse, error)
}

type planService struct {
	generator      *plan.Generator
	storage        *plan.Storage
	sessionRepo    *memory.SessionRepository
	eventPublisher *nats.Publisher
	log            logger.ILogger
}

func NewPlanService(
	generator *plan.Generator,
	storage *plan.Storage,
	sessionRepo *memory.SessionRepository,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IPlanService {
	return &planService{
		generator:      generator,
		storage:        storage,
		sessionRepo:    sessionRepo,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (p *planService) Generate(ctx context.Context, request *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	sessionId := defaultSessionId(request.SessionId)

	session, found := p.sessionRepo.Get(sessionId)
	if !found {
		return nil, serverutils.NewApiError(400, "No research data found. Please conduct research first.")
	}

	session.Lock()
	defer session.Unlock()

	record := session.Context.SynthesizedData
	if record == nil {
		return nil, serverutils.NewApiError(400, "No research data found. Please conduct research first.")
	}

	doc := p.generator.Generate(ctx, request.CompanyName, record)

	savedFile, err := p.storage.Save(doc, "")
	if err != nil {
		return nil, fmt.Errorf("failed to save account plan: %w", err)
	}

	session.Context.AccountPlan = doc

	if p.eventPublisher != nil && !doc.IsError() {
		evt := events.NewPlanGeneratedEvent(sessionId, request.CompanyName, doc.Version())
		if err := p.eventPublisher.Publish(ctx, evt); err != nil {
			p.log.Warn("PlanService", "Failed to publish PLAN_GENERATED event", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	p.log.Info("PlanService", "Account plan generated", map[string]interface{}{
		"session_id":   sessionId,
		"company_name": request.CompanyName,
		"saved_file":   savedFile,
		"degraded":     doc.IsError(),
	})

	return &dto.GeneratePlanResponse{
		Plan:      doc,
		PlanText:  plan.FormatText(doc),
		SavedFile: savedFile,
		SessionId: sessionId,
	}, nil
}

func (p *planService) UpdateSection(ctx context.Context, request *dto.UpdateSectionRequest) (*dto.UpdateSectionResponse, error) {
	sessionId := defaultSessionId(request.SessionId)

	session, found := p.sessionRepo.Get(sessionId)
	if !found {
		return nil, serverutils.NewApiError(400, "No active session found.")
	}

	session.Lock()
	defer session.Unlock()

	doc := session.Context.AccountPlan
	if doc == nil {
		return nil, serverutils.NewApiError(400, "No account plan found. Please generate a plan first.")
	}

	updated := plan.ApplyUpdate(doc, request.SectionPath, request.NewValue)

	savedFile, err := p.storage.Save(updated, "")
	if err != nil {
		return nil, fmt.Errorf("failed to save account plan: %w", err)
	}

	session.Context.AccountPlan = updated

	p.log.Info("PlanService", "Plan section updated", map[string]interface{}{
		"session_id":   sessionId,
		"section_path": request.SectionPath,
		"saved_file":   savedFile,
	})

	return &dto.UpdateSectionResponse{
		Plan:      updated,
		PlanText:  plan.FormatText(updated),
		SavedFile: savedFile,
		SessionId: sessionId,
	}, nil
}

func (p *planService) List(ctx context.Context) (*dto.PlanListResponse, error) {
	plans, err := p.storage.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list account plans: %w", err)
	}
	return &dto.PlanListResponse{Plans: plans}, nil
}

func (p *planService) Get(ctx context.Context, filename string) (*dto.PlanDetailResponse, error) {
	doc, err := p.storage.Load(filename)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			return nil, serverutils.NewApiError(404, "Plan not found")
		}
		return nil, fmt.Errorf("failed to load account plan: %w", err)
	}

	return &dto.PlanDetailResponse{
		Filename: filename,
		Plan:     doc,
		PlanText: plan.FormatText(doc),
	}, nil
}
