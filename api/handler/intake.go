package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/metrics"
	"github.com/subsidyhub/backend/pkg/httpcontext"
	intakeUC "github.com/subsidyhub/backend/usecase/intake"
)

type IntakeHandler struct {
	baseHandler
	uc *intakeUC.UseCase
}

func NewIntakeHandler(uc *intakeUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// formDescriptor enumerates the intake form for clients that render it
// themselves; the HTML front end lives outside this service.
var formDescriptor = map[string]interface{}{
	"action": "/apply",
	"method": "POST",
	"fields": map[string][]string{
		"required": {"name", "aadhaar", "phone", "address", "subsidy_type"},
		"optional": {"pan", "email", "income", "family_members", "existing_benefits"},
	},
}

// @Summary Describe the intake form
// @Tags intake
// @Router / [get]
func (h *IntakeHandler) Home(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, formDescriptor)
}

// @Summary Submit a subsidy application
// @Tags intake
// @Router /apply [post]
func (h *IntakeHandler) Apply(ctx *fasthttp.RequestCtx) {
	args := ctx.PostArgs()

	in := intakeUC.SubmitInput{
		Name:             string(args.Peek("name")),
		Aadhaar:          string(args.Peek("aadhaar")),
		PAN:              string(args.Peek("pan")),
		Phone:            string(args.Peek("phone")),
		Email:            string(args.Peek("email")),
		Address:          string(args.Peek("address")),
		SubsidyType:      string(args.Peek("subsidy_type")),
		ExistingBenefits: string(args.Peek("existing_benefits")),
	}
	if raw := string(args.Peek("income")); raw != "" {
		income, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "income must be a number"))
			return
		}
		in.Income = income
	}
	if raw := string(args.Peek("family_members")); raw != "" {
		members, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "family_members must be an integer"))
			return
		}
		in.FamilyMembers = members
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.uc.Submit(stdCtx, in)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	metrics.ApplicationsSubmitted.Inc()
	ctx.Redirect(fmt.Sprintf("/result/%d", id), fasthttp.StatusFound)
}

// @Summary View a single application
// @Tags intake
// @Router /result/{id} [get]
func (h *IntakeHandler) Result(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrApplicationNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, app)
}
