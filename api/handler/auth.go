package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/subsidyhub/backend/api/transport"
	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/middleware"
	"github.com/subsidyhub/backend/pkg/httpcontext"
	authUC "github.com/subsidyhub/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Describe the login form
// @Tags auth
// @Router /login [get]
func (h *AuthHandler) LoginForm(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"action": "/login",
		"method": "POST",
		"fields": []string{"username", "password"},
	})
}

// @Summary Authenticate and open a session
// @Tags auth
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseCredentials(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, token, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(middleware.SessionCookie)
	cookie.SetValue(session.ID)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(session.ExpiresAt)
	ctx.Response.Header.SetCookie(cookie)

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"token":      token,
		"is_admin":   session.IsAdmin,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	})
}

// @Summary Close the current session
// @Tags auth
// @Router /logout [get]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	if id := string(ctx.Request.Header.Cookie(middleware.SessionCookie)); id != "" {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		if err := h.uc.Logout(stdCtx, id); err != nil {
			h.logger.Warn("session delete failed", zap.Error(err))
		}
	}

	ctx.Response.Header.DelClientCookie(middleware.SessionCookie)
	ctx.Redirect("/", fasthttp.StatusFound)
}

// parseCredentials accepts either a JSON body or form fields so browser
// forms and API clients share the endpoint.
func (h *AuthHandler) parseCredentials(ctx *fasthttp.RequestCtx) (transport.LoginRequest, bool) {
	var req transport.LoginRequest

	contentType := string(ctx.Request.Header.ContentType())
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondError(ctx, domain.ErrInvalidPayload)
			return req, false
		}
	} else {
		args := ctx.PostArgs()
		req.Username = string(args.Peek("username"))
		req.Password = string(args.Peek("password"))
	}

	if req.Username == "" || req.Password == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "username and password are required"))
		return req, false
	}
	return req, true
}
