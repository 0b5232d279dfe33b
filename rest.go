package polka

import (
	"fmt"

	"github.com/kildevaeld/polka/httpcontext"
	"github.com/kildevaeld/strong"
)

// Rest registers a conventional resource (list, create, get, update, patch,
// delete) on a nested dispatcher. Mount it to give the resource a prefix:
//
//	app.Mount("/users", polka.NewRest("user").
//		List(listUsers).
//		Get(getUser))
type Rest struct {
	name string
	app  *Polka
}

func NewRest(name string) *Rest {
	return &Rest{
		name: name,
		app:  New(),
	}
}

// RestCallback is a handler that receives the resource id bound from the
// route parameter.
type RestCallback func(ctx *httpcontext.Context, id string) error

// Handle makes Rest mountable.
func (r *Rest) Handle(ctx *httpcontext.Context, next Next) {
	r.app.Handle(ctx, next)
}

func (r *Rest) Create(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.app.Post("/", handlers...)
	return r
}

func (r *Rest) List(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.app.Get("/", handlers...)
	return r
}

func (r *Rest) Update(handlers ...interface{}) *Rest {
	return r.idRoute(strong.PUT, handlers)
}

func (r *Rest) Patch(handlers ...interface{}) *Rest {
	return r.idRoute(strong.PATCH, handlers)
}

func (r *Rest) Delete(handlers ...interface{}) *Rest {
	return r.idRoute(strong.DELETE, handlers)
}

func (r *Rest) Get(handlers ...interface{}) *Rest {
	return r.idRoute(strong.GET, handlers)
}

func (r *Rest) idRoute(method string, handlers []interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}

	param := r.name + "_id"
	lastIndex := len(handlers) - 1
	if v, ok := handlers[lastIndex].(func(ctx *httpcontext.Context, id string) error); ok {
		handlers[lastIndex] = func(ctx *httpcontext.Context) error {
			id := ctx.Params().ByName(param)
			if id == "" {
				return strong.NewHTTPError(strong.StatusBadRequest)
			}
			return v(ctx, id)
		}
	} else if v, ok := handlers[lastIndex].(RestCallback); ok {
		handlers[lastIndex] = func(ctx *httpcontext.Context) error {
			id := ctx.Params().ByName(param)
			if id == "" {
				return strong.NewHTTPError(strong.StatusBadRequest)
			}
			return v(ctx, id)
		}
	}

	r.app.Route(method, fmt.Sprintf("/:%s", param), handlers...)
	return r
}
