package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evsys/event-scheduling-api/internal/api/handler/v1/request"
	"github.com/evsys/event-scheduling-api/internal/api/handler/v1/response"
	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetEventAvailability(ctx context.Context, event domain.Event) (int, bool, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListMyEvents(ctx context.Context, principal domain.Principal) ([]domain.Event, error)
	ListUpcomingEvents(ctx context.Context) ([]domain.Event, error)
	ListPastEvents(ctx context.Context) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, principal domain.Principal, id uint) error
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates an event. Only organizers can create events.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "event details"
// @Success      201    {object}  response.EventResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), principal, domain.Event{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Capacity:    input.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAnOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAnOrganizer))
		case errors.Is(err, service.ErrEndBeforeStart), errors.Is(err, service.ErrInvalidCapacity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewEventResponse(event, event.Capacity, false))
}

// HandleGetEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderEvents(ctx, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      200      {object}  response.EventResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	availableSlots, isFull, err := h.svc.GetEventAvailability(ctx.Request.Context(), event)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEventAvailability -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponse(event, availableSlots, isFull))
}

// HandleGetMyEvents godoc
// @Summary      List the organizer's own events
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/my [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetMyEvents(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.ListMyEvents(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrNotAnOrganizer) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAnOrganizer))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyEvents -> h.svc.ListMyEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderEvents(ctx, events)
}

// HandleGetUpcomingEvents godoc
// @Summary      List events that have not started yet
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/upcoming [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetUpcomingEvents(ctx *gin.Context) {
	events, err := h.svc.ListUpcomingEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUpcomingEvents -> h.svc.ListUpcomingEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderEvents(ctx, events)
}

// HandleGetPastEvents godoc
// @Summary      List events that have already ended
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/past [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetPastEvents(ctx *gin.Context) {
	events, err := h.svc.ListPastEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPastEvents -> h.svc.ListPastEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderEvents(ctx, events)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Updates an event. Only the event creator can update it.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true "event ID"
// @Param        input    body      request.UpdateEventRequest  true "event details"
// @Success      200      {object}  response.EventResponse
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateEventRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), principal, domain.Event{
		ID:          eventID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Capacity:    input.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventCreator):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventCreator))
		case errors.Is(err, service.ErrEndBeforeStart), errors.Is(err, service.ErrInvalidCapacity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	availableSlots, isFull, err := h.svc.GetEventAvailability(ctx.Request.Context(), event)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.GetEventAvailability -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponse(event, availableSlots, isFull))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  Deletes an event and all of its bookings. Only the event creator can delete it.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteEvent(ctx.Request.Context(), principal, eventID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventCreator):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventCreator))
		default:
			err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// renderEvents attaches best-effort availability snapshots to a list of events.
func (h *EventHandler) renderEvents(ctx *gin.Context, events []domain.Event) {
	result := make([]response.EventResponse, len(events))
	for i, event := range events {
		availableSlots, isFull, err := h.svc.GetEventAvailability(ctx.Request.Context(), event)
		if err != nil {
			err = fmt.Errorf("v1.renderEvents -> h.svc.GetEventAvailability -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		result[i] = response.NewEventResponse(event, availableSlots, isFull)
	}

	ctx.JSON(http.StatusOK, result)
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%v must be an integer", name)
	}

	return uint(id), nil
}
