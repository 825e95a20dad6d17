package controller

import (
	"io"

	"soukbot-be/internal/dto"
	"soukbot-be/internal/pkg/serverutils"
	"soukbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartConversation(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	UploadImage(ctx *fiber.Ctx) error
	EndConversation(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetActiveConversations(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/start", c.StartConversation)
	h.Post("/message", c.SendMessage)
	h.Post("/image", c.UploadImage)
	h.Post("/:conversationId/end", c.EndConversation)
	h.Get("/active", c.GetActiveConversations)
	h.Get("/:conversationId/history", c.GetHistory)
}

func (c *chatController) StartConversation(ctx *fiber.Ctx) error {
	var req dto.StartConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.StartConversation(ctx.Context(), req.UserId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Conversation started", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), req.UserId, req.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) UploadImage(ctx *fiber.Ctx) error {
	userId := ctx.FormValue("user_id")
	if userId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	switch fileHeader.Header.Get("Content-Type") {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unsupported image format (jpeg, png or webp expected)")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read image file")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read image file")
	}

	res, err := c.service.HandleImageUpload(ctx.Context(), userId, image)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Image processed", res))
}

func (c *chatController) EndConversation(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("conversationId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	res, err := c.service.EndConversation(ctx.Context(), conversationId)
	if err != nil {
		if err.Error() == "conversation not found" {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation ended", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("conversationId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetConversationHistory(ctx.Context(), conversationId, limit, offset)
	if err != nil {
		if err.Error() == "conversation not found" {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation history", res))
}

func (c *chatController) GetActiveConversations(ctx *fiber.Ctx) error {
	res, err := c.service.GetActiveConversations(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Active conversations", res))
}
