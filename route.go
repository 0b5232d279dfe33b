package polka

import (
	"github.com/kildevaeld/polka/httpcontext"
	"github.com/kildevaeld/polka/pathmatch"
)

// bindRoute wraps handler so it only runs when the request method and path
// match. The method is checked before the matcher is consulted; a mismatch of
// either falls through to the next stack entry. On a match the bound
// parameters are stored on the context before the handler runs.
func bindRoute(method, pattern string, handler HandlerFunc) HandlerFunc {
	return func(ctx *httpcontext.Context, next Next) {
		if method != "" && ctx.Method() != method {
			next(nil)
			return
		}

		match := pathmatch.Path(ctx.Path())
		if !match.Against(pattern) {
			next(nil)
			return
		}

		ctx.SetParams(match.Params())
		handler(ctx, next)
	}
}
