package controller

import (
	"campus-guide-be/internal/dto"
	"campus-guide-be/internal/pkg/serverutils"
	"campus-guide-be/internal/service"
	internalWS "campus-guide-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IGuideController interface {
	RegisterRoutes(r fiber.Router, jwt fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	TrackInteraction(ctx *fiber.Ctx) error
	RecordActivity(ctx *fiber.Ctx) error
	ListEvents(ctx *fiber.Ctx) error
}

type guideController struct {
	guideService service.IGuideService
	hub          *internalWS.Hub
}

func NewGuideController(guideService service.IGuideService, hub *internalWS.Hub) IGuideController {
	return &guideController{
		guideService: guideService,
		hub:          hub,
	}
}

func (c *guideController) RegisterRoutes(r fiber.Router, jwt fiber.Handler) {
	h := r.Group("/guide/v1")
	h.Use(jwt)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id", c.GetSession)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Post("sessions/:id/messages", c.SendMessage)
	h.Post("sessions/:id/interactions", c.TrackInteraction)
	h.Post("sessions/:id/activity", c.RecordActivity)
	h.Get("sessions/:id/events", c.ListEvents)
	h.Get("sessions/:id/ws", c.upgrade, websocket.New(c.stream))
}

func userID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals("user_id").(string)
	return id
}

func (c *guideController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.guideService.CreateSession(ctx.UserContext(), userID(ctx))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create guide session", res))
}

func (c *guideController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.guideService.GetSnapshot(ctx.UserContext(), userID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show guide session", res))
}

func (c *guideController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.guideService.DeleteSession(ctx.UserContext(), userID(ctx), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete guide session", nil))
}

func (c *guideController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guideService.SendMessage(ctx.UserContext(), userID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *guideController) TrackInteraction(ctx *fiber.Ctx) error {
	var req dto.TrackInteractionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guideService.TrackInteraction(ctx.UserContext(), userID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success track interaction", res))
}

func (c *guideController) RecordActivity(ctx *fiber.Ctx) error {
	var req dto.RecordActivityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guideService.RecordActivity(ctx.UserContext(), userID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record activity", res))
}

func (c *guideController) ListEvents(ctx *fiber.Ctx) error {
	var req dto.ListEventsQuery
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guideService.ListEvents(ctx.UserContext(), userID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list events", res))
}

// upgrade checks ownership before handing the connection to the hub.
func (c *guideController) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	if err := c.guideService.Authorize(ctx.UserContext(), userID(ctx), ctx.Params("id")); err != nil {
		return err
	}
	ctx.Locals("session_id", ctx.Params("id"))
	return ctx.Next()
}

func (c *guideController) stream(conn *websocket.Conn) {
	sessionID, _ := conn.Locals("session_id").(string)
	uid, _ := conn.Locals("user_id").(string)
	internalWS.ServeWs(c.hub, conn, sessionID, uid)
}
