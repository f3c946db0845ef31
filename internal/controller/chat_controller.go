package controller

import (
	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/internal/pkg/serverutils"
	"ai-chatapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	DeleteAllMessages(ctx *fiber.Ctx) error
	GetStatistics(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService   service.IChatService
	jwtMiddleware fiber.Handler
}

func NewChatController(chatService service.IChatService, jwtMiddleware fiber.Handler) IChatController {
	return &chatController{
		chatService:   chatService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(c.jwtMiddleware)
	h.Post("/messages", c.SendMessage)
	h.Get("/messages", c.GetMessages)
	h.Get("/statistics", c.GetStatistics)
	h.Delete("/messages/:id", c.DeleteMessage)
	h.Delete("/messages", c.DeleteAllMessages)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}
	return userId, nil
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	res, err := c.chatService.GetMessages(ctx.Context(), userId, skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}

	if err := c.chatService.DeleteMessage(ctx.Context(), userId, messageId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message deleted", nil))
}

func (c *chatController) DeleteAllMessages(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteAllMessages(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("All messages deleted", nil))
}

func (c *chatController) GetStatistics(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetStatistics(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get statistics", res))
}
