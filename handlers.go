package polka

import "github.com/kildevaeld/polka/httpcontext"

// HandlerFunc is one entry in the dispatch stack. A handler either completes
// the response itself or invokes next to hand the request to the following
// entry; invoking next with an error short-circuits dispatch into the error
// route. A handler should do one or the other, not both.
type HandlerFunc func(ctx *httpcontext.Context, next Next)

// Next is the continuation handed to a handler for a single request. It may
// be invoked synchronously or later from another goroutine.
type Next func(err error)

// ErrorHandlerFunc receives errors that reach the top of a dispatch with no
// outer continuation.
type ErrorHandlerFunc func(err error, ctx *httpcontext.Context)

type Handler interface {
	ServeHTTPContext(ctx *httpcontext.Context, next Next)
}

// Mountable is anything that can dispatch requests below a mount point.
// *Polka itself is Mountable.
type Mountable interface {
	Handle(ctx *httpcontext.Context, next Next)
}
