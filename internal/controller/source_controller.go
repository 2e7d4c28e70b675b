package controller

import (
	"admin-chatbot-be/internal/dto"
	"admin-chatbot-be/internal/pkg/serverutils"
	"admin-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISourceController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type sourceController struct {
	service service.ISourceService
	auth    fiber.Handler
}

func NewSourceController(service service.ISourceService, auth fiber.Handler) ISourceController {
	return &sourceController{service: service, auth: auth}
}

func (c *sourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/source")
	h.Use(c.auth)
	h.Get("/:category/search", c.Search)
}

func (c *sourceController) Search(ctx *fiber.Ctx) error {
	var req dto.SourceSearchRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	req.Category = ctx.Params("category")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search source", res))
}
