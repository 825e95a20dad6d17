package controller

import (
	"errors"

	"soukbot-be/internal/dto"
	"soukbot-be/internal/pkg/serverutils"
	"soukbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPartnerController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	SearchPartners(ctx *fiber.Ctx) error
	GetCities(ctx *fiber.Ctx) error
	GetProductTypes(ctx *fiber.Ctx) error
	CreatePartner(ctx *fiber.Ctx) error
	UpdatePartner(ctx *fiber.Ctx) error
	DeletePartner(ctx *fiber.Ctx) error
}

type partnerController struct {
	service service.IPartnerService
}

func NewPartnerController(service service.IPartnerService) IPartnerController {
	return &partnerController{service: service}
}

func (c *partnerController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/partners")
	h.Post("/search", c.SearchPartners)
	h.Get("/cities", c.GetCities)
	h.Get("/product-types", c.GetProductTypes)
	// Catalog mutations are an admin surface
	h.Post("/", authMiddleware, c.CreatePartner)
	h.Put("/:partnerId", authMiddleware, c.UpdatePartner)
	h.Delete("/:partnerId", authMiddleware, c.DeletePartner)
}

func (c *partnerController) SearchPartners(ctx *fiber.Ctx) error {
	var req dto.SearchPartnersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SearchPartners(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Partner search results", res))
}

func (c *partnerController) GetCities(ctx *fiber.Ctx) error {
	res, err := c.service.GetCities(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Available cities", res))
}

func (c *partnerController) GetProductTypes(ctx *fiber.Ctx) error {
	res, err := c.service.GetProductTypes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Available product types", res))
}

func (c *partnerController) CreatePartner(ctx *fiber.Ctx) error {
	var req dto.CreatePartnerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreatePartner(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Partner created", res))
}

func (c *partnerController) UpdatePartner(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("partnerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid partner id")
	}

	var req dto.UpdatePartnerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdatePartner(ctx.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Partner updated", res))
}

func (c *partnerController) DeletePartner(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("partnerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid partner id")
	}

	if err := c.service.DeletePartner(ctx.Context(), id); err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Partner deleted", struct{}{}))
}
