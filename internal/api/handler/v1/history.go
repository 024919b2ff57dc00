package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evsys/event-scheduling-api/internal/api/handler/v1/response"
	"github.com/evsys/event-scheduling-api/internal/domain"
)

type HistoryService interface {
	GetHistory(ctx context.Context, actorID uint) ([]domain.AuditRecord, error)
}

type HistoryHandler struct {
	svc  HistoryService
	uSvc UserService
}

func NewHistoryHandler(svc HistoryService, uSvc UserService) *HistoryHandler {
	return &HistoryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetHistory godoc
// @Summary      Get the caller's action history
// @Description  Returns the audit trail of actions performed by the authenticated user, newest first.
// @Tags         history
// @Produce      json
// @Success      200  {array}   domain.AuditRecord
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /history [get]
// @Security BearerAuth
func (h *HistoryHandler) HandleGetHistory(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	records, err := h.svc.GetHistory(ctx.Request.Context(), principal.UserID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHistory -> h.svc.GetHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}
