package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/subsidyhub/backend/api/transport"
	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/infrastructure/audit"
	"github.com/subsidyhub/backend/internal/metrics"
	"github.com/subsidyhub/backend/internal/middleware"
	"github.com/subsidyhub/backend/pkg/httpcontext"
	"github.com/subsidyhub/backend/repository"
	reviewUC "github.com/subsidyhub/backend/usecase/review"
)

type AdminHandler struct {
	baseHandler
	uc    *reviewUC.UseCase
	audit *audit.Store
}

func NewAdminHandler(uc *reviewUC.UseCase, auditStore *audit.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		audit:       auditStore,
	}
}

// @Summary Pending and processed review queues
// @Tags admin
// @Router /admin [get]
func (h *AdminHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	filter := repository.ApplicationFilter{
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 0),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	queue, err := h.uc.Queue(stdCtx, middleware.ActorFrom(ctx), filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, queue)
}

// @Summary Run the fraud check for one stored application
// @Tags admin
// @Router /predict/{id} [get]
func (h *AdminHandler) FraudCheck(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		h.respondPlainError(ctx, domain.ErrApplicationNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.RunFraudCheck(stdCtx, middleware.ActorFrom(ctx), id)
	if err != nil {
		h.respondPlainError(ctx, err)
		return
	}

	verdict := "legitimate"
	if result.IsFraud {
		verdict = "fraudulent"
	}
	metrics.FraudChecks.WithLabelValues(verdict).Inc()

	h.respondJSON(ctx, http.StatusOK, transport.FraudCheckResponse{
		IsFraud:     result.IsFraud,
		Probability: result.Probability,
		Message:     result.Message,
	})
}

// @Summary Record the administrator's disposition
// @Tags admin
// @Router /update_status/{id} [post]
func (h *AdminHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		h.respondPlainError(ctx, domain.ErrApplicationNotFound)
		return
	}

	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondPlainError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Finalize(stdCtx, middleware.ActorFrom(ctx), id, req.Status, req.Notes); err != nil {
		h.respondPlainError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.StatusUpdateResponse{Success: true})
}

// @Summary Recent review audit entries
// @Tags admin
// @Router /admin/audit [get]
func (h *AdminHandler) Audit(ctx *fasthttp.RequestCtx) {
	limit := ctx.QueryArgs().GetUintOrZero("limit")

	entries, err := h.audit.Recent(limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
