package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evsys/event-scheduling-api/internal/api/handler/v1/request"
	"github.com/evsys/event-scheduling-api/internal/api/handler/v1/response"
	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/service"
)

type BookingService interface {
	CreateBooking(ctx context.Context, principal domain.Principal, eventID uint) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, principal domain.Principal, bookingID uint, newStatus domain.BookingStatus) (domain.Booking, error)
	CancelBooking(ctx context.Context, principal domain.Principal, bookingID uint) (domain.Booking, error)
	DeleteBooking(ctx context.Context, principal domain.Principal, bookingID uint) error
	GetBooking(ctx context.Context, principal domain.Principal, bookingID uint) (domain.Booking, error)
	ListBookings(ctx context.Context, principal domain.Principal) ([]domain.Booking, error)
}

type BookingHandler struct {
	svc  BookingService
	uSvc UserService
}

func NewBookingHandler(svc BookingService, uSvc UserService) *BookingHandler {
	return &BookingHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// renderBookingErr maps the booking domain errors onto HTTP rejections.
// A lost race for the last slot surfaces as the same event-full error as an
// event that was full all along.
func renderBookingErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotACustomer):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotACustomer))
	case errors.Is(err, service.ErrBookingAccessDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrBookingAccessDenied))
	case errors.Is(err, service.ErrEventEnded),
		errors.Is(err, service.ErrEventOngoing),
		errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrBookingNotActive),
		errors.Is(err, service.ErrInvalidStatus):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleCreateBooking godoc
// @Summary      Book a slot on an event
// @Description  Creates an active booking for the authenticated customer, subject to capacity and time-window checks.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateBookingRequest  true  "booking details"
// @Success      201    {object}  domain.Booking
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /bookings [post]
// @Security BearerAuth
func (h *BookingHandler) HandleCreateBooking(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.CreateBooking(ctx.Request.Context(), principal, input.EventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", input.EventID))
			return
		}

		renderBookingErr(ctx, "v1.HandleCreateBooking -> h.svc.CreateBooking", err)
		return
	}

	ctx.JSON(http.StatusCreated, booking)
}

// HandleGetBookings godoc
// @Summary      List bookings
// @Description  Customers see their own bookings; organizers see bookings on their events.
// @Tags         bookings
// @Produce      json
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bookings [get]
// @Security BearerAuth
func (h *BookingHandler) HandleGetBookings(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookings, err := h.svc.ListBookings(ctx.Request.Context(), principal)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBookings -> h.svc.ListBookings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// HandleGetBooking godoc
// @Summary      Get a booking by ID
// @Description  The attendee can read their booking; the event's organizer can read bookings on their events.
// @Tags         bookings
// @Produce      json
// @Param        bookingID  path      int  true "booking ID"
// @Success      200        {object}  domain.Booking
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /bookings/{bookingID} [get]
// @Security BearerAuth
func (h *BookingHandler) HandleGetBooking(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.GetBooking(ctx.Request.Context(), principal, bookingID)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("booking", "ID", bookingID))
			return
		}

		renderBookingErr(ctx, "v1.HandleGetBooking -> h.svc.GetBooking", err)
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// HandleUpdateBooking godoc
// @Summary      Update a booking's status
// @Description  Cancels or reactivates a booking. Reactivation re-runs the full admission check.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int                           true "booking ID"
// @Param        input      body      request.UpdateBookingRequest  true "new status"
// @Success      200        {object}  domain.Booking
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /bookings/{bookingID} [patch]
// @Security BearerAuth
func (h *BookingHandler) HandleUpdateBooking(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateBookingRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.UpdateBookingStatus(ctx.Request.Context(), principal, bookingID, domain.BookingStatus(input.Status))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("booking", "ID", bookingID))
			return
		}

		renderBookingErr(ctx, "v1.HandleUpdateBooking -> h.svc.UpdateBookingStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// HandleCancelBooking godoc
// @Summary      Cancel a booking
// @Description  Cancels an active booking. Fails when the booking is not active or the event has started.
// @Tags         bookings
// @Produce      json
// @Param        bookingID  path      int  true "booking ID"
// @Success      200        {object}  response.CancelBookingResponse
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /bookings/{bookingID}/cancel [post]
// @Security BearerAuth
func (h *BookingHandler) HandleCancelBooking(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.CancelBooking(ctx.Request.Context(), principal, bookingID)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("booking", "ID", bookingID))
			return
		}

		renderBookingErr(ctx, "v1.HandleCancelBooking -> h.svc.CancelBooking", err)
		return
	}

	ctx.JSON(http.StatusOK, response.CancelBookingResponse{
		Message: "Booking cancelled successfully.",
		Status:  booking.Status,
	})
}

// HandleDeleteBooking godoc
// @Summary      Delete a booking
// @Description  Hard-deletes a booking. Only the attendee can delete their booking.
// @Tags         bookings
// @Produce      json
// @Param        bookingID  path      int  true "booking ID"
// @Success      204
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /bookings/{bookingID} [delete]
// @Security BearerAuth
func (h *BookingHandler) HandleDeleteBooking(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteBooking(ctx.Request.Context(), principal, bookingID); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("booking", "ID", bookingID))
			return
		}

		renderBookingErr(ctx, "v1.HandleDeleteBooking -> h.svc.DeleteBooking", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
