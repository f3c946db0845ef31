package controller

import (
	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/internal/pkg/serverutils"
	"ai-chatapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService  service.IAgentService
	jwtMiddleware fiber.Handler
}

func NewAgentController(agentService service.IAgentService, jwtMiddleware fiber.Handler) IAgentController {
	return &agentController{
		agentService:  agentService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agents")
	h.Use(c.jwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Deactivate)
}

func (c *agentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.CreateAgent(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent created", res))
}

func (c *agentController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid agent id")
	}

	res, err := c.agentService.GetAgent(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get agent", res))
}

func (c *agentController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid agent id")
	}

	var req dto.UpdateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.agentService.UpdateAgent(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent updated", res))
}

func (c *agentController) List(ctx *fiber.Ctx) error {
	activeOnly := ctx.QueryBool("active_only", true)

	res, err := c.agentService.ListAgents(ctx.Context(), activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get agents", res))
}

func (c *agentController) Deactivate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid agent id")
	}

	if err := c.agentService.DeactivateAgent(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent deactivated", nil))
}
