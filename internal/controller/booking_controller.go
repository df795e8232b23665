package controller

import (
	"errors"
	"time"

	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/pkg/serverutils"
	"fitmarket-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	CheckAvailability(ctx *fiber.Ctx) error
}

type bookingController struct {
	service service.IBookingService
}

func NewBookingController(service service.IBookingService) IBookingController {
	return &bookingController{service: service}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bookings")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/availability", c.CheckAvailability)
	h.Patch("/:id/complete", c.Complete)
	h.Patch("/:id/cancel", c.Cancel)
}

// CheckAvailability reports whether a time window is free for a person before
// the client commits to a booking.
func (c *bookingController) CheckAvailability(ctx *fiber.Ctx) error {
	personId, err := uuid.Parse(ctx.Query("person_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid person_id"))
	}

	date, err := time.Parse("2006-01-02", ctx.Query("date"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid date, expected YYYY-MM-DD"))
	}

	startAt, err := time.Parse(time.RFC3339, ctx.Query("start_at"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid start_at, expected RFC3339"))
	}
	endAt, err := time.Parse(time.RFC3339, ctx.Query("end_at"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid end_at, expected RFC3339"))
	}

	conflict, err := c.service.CheckConflict(ctx.Context(), personId, date, startAt, endAt)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Availability checked", fiber.Map{"available": !conflict}))
}

func (c *bookingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user ID"))
	}

	res, err := c.service.CreateBooking(ctx.Context(), userId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingConflict):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		case errors.Is(err, service.ErrEntitlementNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrNoSessionsRemaining),
			errors.Is(err, service.ErrEntitlementExpired):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Booking created", res))
}

func (c *bookingController) Complete(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking ID"))
	}

	if err := c.service.CompleteBooking(ctx.Context(), bookingId); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Booking completed", nil))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking ID"))
	}

	var req dto.CancelBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.service.CancelBooking(ctx.Context(), bookingId, req.RefundSession); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Booking cancelled", nil))
}
