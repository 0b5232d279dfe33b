package polka

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/kildevaeld/polka/httpcontext"
)

// ToHandler converts the handler shapes accepted by the registration surface
// into a HandlerFunc.
//
// Error-returning context handlers advance on a nil return unless they wrote
// the response; a returned error goes into the continuation. Plain net/http
// handlers work the same way: writing the response ends dispatch, staying
// silent falls through.
func ToHandler(handler interface{}) (HandlerFunc, error) {
	switch h := handler.(type) {
	case HandlerFunc:
		return h, nil
	case func(*httpcontext.Context, Next):
		return h, nil
	case Handler:
		return h.ServeHTTPContext, nil
	case func(*httpcontext.Context) error:
		return errHandler(h), nil
	case http.HandlerFunc:
		return httpHandler(h), nil
	case func(http.ResponseWriter, *http.Request):
		return httpHandler(h), nil
	case http.Handler:
		return httpHandler(h.ServeHTTP), nil
	}

	return nil, fmt.Errorf("handler is of wrong type '%T'", handler)
}

func errHandler(fn func(*httpcontext.Context) error) HandlerFunc {
	return func(ctx *httpcontext.Context, next Next) {
		if err := fn(ctx); err != nil {
			next(err)
			return
		}
		if !ctx.Response().Written() {
			next(nil)
		}
	}
}

func httpHandler(fn http.HandlerFunc) HandlerFunc {
	return func(ctx *httpcontext.Context, next Next) {
		fn(ctx.Response(), ctx.Request())
		if !ctx.Response().Written() {
			next(nil)
		}
	}
}

// Compose converts handlers and chains them into a single HandlerFunc with a
// route-local continuation: each handler advances to the following one, the
// last hands over to the outer continuation, and an error skips straight to
// it. Conversion failures are collected and reported together.
func Compose(handlers []interface{}) (HandlerFunc, error) {
	var fns []HandlerFunc
	var result *multierror.Error

	for _, handler := range handlers {
		fn, err := ToHandler(handler)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		fns = append(fns, fn)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return composeFuncs(fns), nil
}

func composeFuncs(fns []HandlerFunc) HandlerFunc {
	if len(fns) == 1 {
		return fns[0]
	}

	return func(ctx *httpcontext.Context, out Next) {
		idx := 0

		var next Next
		next = func(err error) {
			if err != nil {
				out(err)
				return
			}
			if idx >= len(fns) {
				out(nil)
				return
			}
			fn := fns[idx]
			idx++
			fn(ctx, next)
		}

		next(nil)
	}
}
