package panic

import (
	"fmt"

	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/httpcontext"
)

// New returns a handler that recovers a panic raised while the rest of the
// stack runs synchronously below it and feeds it to the continuation as an
// error. Panics in handlers that already went asynchronous cannot be caught
// here.
func New() polka.HandlerFunc {
	return func(ctx *httpcontext.Context, next polka.Next) {
		defer func() {
			if e := recover(); e != nil {
				if err, ok := e.(error); ok {
					next(err)
				} else {
					next(fmt.Errorf("%s", e))
				}
			}
		}()
		next(nil)
	}
}
