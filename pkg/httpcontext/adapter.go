// Package httpcontext bridges fasthttp requests into stdlib contexts for
// the usecase layer: a per-request deadline, a propagated request id, and
// caller metadata.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/subsidyhub/backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

type metaKey struct{}

// Meta carries request metadata the usecase layer may want for auditing.
type Meta struct {
	RemoteAddr string
	UserAgent  string
}

// ContextWithMeta stores request metadata for later retrieval.
func ContextWithMeta(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// MetaFrom returns the request metadata stored in ctx, if any.
func MetaFrom(ctx context.Context) Meta {
	meta, _ := ctx.Value(metaKey{}).(Meta)
	return meta
}

// Adapter derives deadline-bound stdlib contexts from fasthttp requests.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds the request context and echoes the request id back to the
// client. Callers own the returned cancel.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	id := requestID(ctx)
	ctx.Response.Header.Set(requestIDHeader, id)
	stdCtx = logger.ContextWithRequestID(stdCtx, id)

	meta := Meta{UserAgent: string(ctx.Request.Header.UserAgent())}
	if addr := ctx.RemoteAddr(); addr != nil {
		meta.RemoteAddr = addr.String()
	}
	return ContextWithMeta(stdCtx, meta), cancel
}

// requestID reuses the caller-supplied id when present so ids survive
// proxy hops.
func requestID(ctx *fasthttp.RequestCtx) string {
	if header := strings.TrimSpace(string(ctx.Request.Header.Peek(requestIDHeader))); header != "" {
		return header
	}
	return uuid.NewString()
}
