package controller

import (
	"strconv"

	"soukbot-be/internal/dto"
	"soukbot-be/internal/pkg/serverutils"
	"soukbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	CreateKnowledge(ctx *fiber.Ctx) error
	SearchKnowledge(ctx *fiber.Ctx) error
	AddCorpusEntry(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	service service.IKnowledgeService
}

func NewKnowledgeController(service service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{service: service}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/knowledge")
	h.Get("/search", c.SearchKnowledge)
	// Mutations are an admin surface
	h.Post("/", authMiddleware, c.CreateKnowledge)
	h.Post("/corpus", authMiddleware, c.AddCorpusEntry)
}

func (c *knowledgeController) CreateKnowledge(ctx *fiber.Ctx) error {
	var req dto.CreateKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateKnowledge(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Knowledge entry created", res))
}

func (c *knowledgeController) SearchKnowledge(ctx *fiber.Ctx) error {
	query := ctx.Query("query", "")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter is required")
	}
	limit, _ := strconv.Atoi(ctx.Query("limit", "5"))

	res, err := c.service.SearchKnowledge(ctx.Context(), query, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Knowledge search results", res))
}

type addCorpusEntryRequest struct {
	Question string `json:"question" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=in_scope irrelevant"`
}

func (c *knowledgeController) AddCorpusEntry(ctx *fiber.Ctx) error {
	var req addCorpusEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	if err := c.service.AddCorpusEntry(ctx.Context(), req.Question, req.Kind); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Corpus entry queued for embedding", struct{}{}))
}
