package polka

import (
	"sync/atomic"

	"github.com/kildevaeld/polka/httpcontext"
	"github.com/kildevaeld/strong"
)

// Handle dispatches the request through the handler stack, starting at index
// zero. Handlers registered while the walk is in progress are picked up by
// cursors that have not reached them.
//
// When out is nil Handle is a top-level dispatch: a continuation error ends
// in the error route and stack exhaustion produces the default not-found
// response. With a non-nil out the dispatcher runs nested inside another
// stack; errors and exhaustion are delegated to out instead.
//
// Handle implements HandlerFunc, so a dispatcher can be pushed onto another
// dispatcher's stack directly.
//
// A panic inside a handler is not recovered here; it unwinds to whoever
// invoked the continuation. Pair with middlewares/panic to turn panics into
// continuation errors.
func (p *Polka) Handle(ctx *httpcontext.Context, out Next) {
	idx := 0

	var next Next
	next = func(err error) {
		if err != nil {
			if out != nil {
				out(err)
				return
			}
			if handle := p.ErrorHandler; handle != nil {
				handle(err, ctx)
			} else {
				DefaultErrorHandler(err, ctx)
			}
			return
		}

		handler, ok := p.handlerAt(idx)
		if !ok {
			if out != nil {
				out(nil)
				return
			}
			p.notFound(ctx)
			return
		}
		idx++

		step := next
		if p.o.GuardNext {
			step = oneshot(next)
		}

		handler(ctx, step)
	}

	next(nil)
}

// oneshot lets a continuation advance at most once. Error invocations always
// pass through so a late failure can still reach the error route.
func oneshot(next Next) Next {
	var advanced uint32
	return func(err error) {
		if err != nil {
			next(err)
			return
		}
		if !atomic.CompareAndSwapUint32(&advanced, 0, 1) {
			return
		}
		next(nil)
	}
}

func (p *Polka) notFound(ctx *httpcontext.Context) {
	res := ctx.Response()
	if res.Written() {
		return
	}

	res.Header().Set(strong.HeaderContentType, strong.MIMETextPlain)
	res.WriteHeader(strong.StatusNotFound)

	if ctx.Method() != strong.HEAD {
		res.Write([]byte("Not Found"))
	}
}

// DefaultErrorHandler is the initial error route. The status comes from the
// error when it is a *strong.HttpError, 500 otherwise. It does nothing when
// the response has already been started.
func DefaultErrorHandler(err error, ctx *httpcontext.Context) {
	res := ctx.Response()
	if res.Written() {
		return
	}

	status := strong.StatusInternalServerError
	msg := strong.StatusText(status)
	if httperr, ok := err.(*strong.HttpError); ok {
		status = httperr.StatusCode()
		msg = httperr.Error()
	}

	res.Header().Set(strong.HeaderContentType, strong.MIMETextPlain)
	res.WriteHeader(status)
	res.Write([]byte(msg))
}
