package controller

import (
	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/internal/pkg/serverutils"
	"ai-chatapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOllamaController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	ListModels(ctx *fiber.Ctx) error
	ShowModel(ctx *fiber.Ctx) error
	PullModel(ctx *fiber.Ctx) error
	DeleteModel(ctx *fiber.Ctx) error
}

type ollamaController struct {
	ollamaService service.IOllamaService
	jwtMiddleware fiber.Handler
}

func NewOllamaController(ollamaService service.IOllamaService, jwtMiddleware fiber.Handler) IOllamaController {
	return &ollamaController{
		ollamaService: ollamaService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *ollamaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ollama")
	h.Get("/health", c.Health)
	h.Use(c.jwtMiddleware)
	h.Get("/models", c.ListModels)
	h.Get("/models/:name", c.ShowModel)
	h.Post("/models/pull", c.PullModel)
	h.Delete("/models/:name", c.DeleteModel)
}

func (c *ollamaController) Health(ctx *fiber.Ctx) error {
	res := c.ollamaService.Health(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Ollama status", res))
}

func (c *ollamaController) ListModels(ctx *fiber.Ctx) error {
	res, err := c.ollamaService.ListModels(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get models", res))
}

func (c *ollamaController) ShowModel(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Model name is required")
	}

	res, err := c.ollamaService.ShowModel(ctx.Context(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get model", res))
}

func (c *ollamaController) PullModel(ctx *fiber.Ctx) error {
	var req dto.PullModelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.ollamaService.PullModel(ctx.Context(), req.Name); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Model pulled", nil))
}

func (c *ollamaController) DeleteModel(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Model name is required")
	}

	if err := c.ollamaService.DeleteModel(ctx.Context(), name); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Model deleted", nil))
}
