package dto

import "ai-research-be/pkg/plan"

// --- Account Plan ---

type GeneratePlanRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	SessionId   string `json:"session_id"`
}

type GeneratePlanResponse struct {
	Plan      plan.Document `json:"plan"`
	PlanText  string        `json:"plan_text"`
	SavedFile string        `json:"saved_file"`
	SessionId string        `json:"session_id"`
}

type UpdateSectionRequest struct {
	SectionPath string      `json:"section_path" validate:"required"`
	NewValue    interface{} `json:"new_value" validate:"required"`
	SessionId   string      `json:"session_id"`
}

type UpdateSectionResponse struct {
	Plan      plan.Document `json:"plan"`
	PlanText  string        `json:"plan_text"`
	SavedFile string        `json:"saved_file"`
	SessionId string        `json:"session_id"`
}

type PlanListResponse struct {
	Plans []string `json:"plans"`
}

type PlanDetailResponse struct {
	Filename string        `json:"filename"`
	Plan     plan.Document `json:"plan"`
	PlanText string        `json:"plan_text"`
}
