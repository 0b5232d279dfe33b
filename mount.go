package polka

import (
	"strings"

	"github.com/kildevaeld/polka/httpcontext"
	"go.uber.org/zap"
)

// Mount registers group below path. While the request runs inside the group
// its context path is rebased to the remainder after the prefix, and restored
// when the group delegates back. Requests outside the prefix fall through.
// Optional middleware runs before the group, only for requests under the
// prefix.
func (p *Polka) Mount(path string, group Mountable, middleware ...interface{}) *Polka {
	handlers := append(middleware[:len(middleware):len(middleware)], HandlerFunc(group.Handle))

	handler, err := Compose(handlers)
	if err != nil {
		panic(err)
	}

	prefix := "/" + strings.Trim(path, "/")

	if p.o.Debug {
		zap.L().Debug("register mount", zap.String("path", prefix))
	}

	p.push(func(ctx *httpcontext.Context, next Next) {
		current := ctx.Path()

		if prefix != "/" {
			rest, ok := trimPathPrefix(current, prefix)
			if !ok {
				next(nil)
				return
			}
			ctx.SetPath(rest)
		}

		handler(ctx, func(err error) {
			ctx.SetPath(current)
			next(err)
		})
	})

	return p
}

// trimPathPrefix strips prefix from path on a segment boundary.
func trimPathPrefix(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	if rest == "" {
		return "/", true
	}
	if rest[0] != '/' {
		return "", false
	}
	return rest, true
}
