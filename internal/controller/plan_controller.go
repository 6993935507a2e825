package controller

import (
	"ai-research-be/internal/dto"
	"ai-research-be/internal/pkg/serverutils"
	"ai-research-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	UpdateSection(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plan/v1")
	h.Post("generate", c.Generate)
	h.Put("section", c.UpdateSection)
	h.Get("", c.List)
	h.Get(":filename", c.Show)
}

func (c *planController) Generate(ctx *fiber.Ctx) error {
	var req dto.GeneratePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.planService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Account plan generated", res))
}

func (c *planController) UpdateSection(ctx *fiber.Ctx) error {
	var req dto.UpdateSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.planService.UpdateSection(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Section '"+req.SectionPath+"' updated successfully", res))
}

func (c *planController) List(ctx *fiber.Ctx) error {
	res, err := c.planService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Saved account plans", res))
}

func (c *planController) Show(ctx *fiber.Ctx) error {
	filename := ctx.Params("filename")

	res, err := c.planService.Get(ctx.Context(), filename)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Account plan detail", res))
}
