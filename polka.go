package polka

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/kildevaeld/polka/httpcontext"
	"github.com/kildevaeld/strong"
	"go.uber.org/zap"
)

type Options struct {
	Debug bool
	// GuardNext wraps every handler's continuation in a one-shot guard: a
	// second attempt to advance is ignored. Errors always pass through.
	GuardNext bool
	// HandleError, when set, replaces DefaultErrorHandler as the initial
	// error route.
	HandleError ErrorHandlerFunc
}

// Polka is an ordered stack of handlers dispatched in registration order
// against each incoming request. The stack is live: handlers registered while
// a request is in flight are seen by cursors that have not passed them yet.
type Polka struct {
	noCopy

	mu    sync.RWMutex
	stack []HandlerFunc

	// ErrorHandler is the error route. Replace it wholesale to customize
	// how continuation errors are reported.
	ErrorHandler ErrorHandlerFunc

	s         *http.Server
	listening bool
	o         *Options
}

func New() *Polka {
	return NewWithOptions(nil)
}

func NewWithOptions(o *Options) *Polka {
	if o == nil {
		o = &Options{}
	}

	p := &Polka{
		s: &http.Server{},
		o: o,
	}

	p.ErrorHandler = o.HandleError
	if p.ErrorHandler == nil {
		p.ErrorHandler = DefaultErrorHandler
	}

	p.s.Handler = p

	return p
}

// ServeHTTP makes the dispatcher a valid listener for net/http.
func (p *Polka) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.Handle(httpcontext.New(w, r), nil)
}

// Listen binds the dispatcher on addr and invokes ready once the socket is
// accepting connections. It blocks until the server stops.
func (p *Polka) Listen(addr string, ready func()) error {
	if p.listening {
		return errors.New("already listening")
	}
	p.listening = true
	p.s.Addr = addr

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		p.listening = false
		return err
	}

	if p.o.Debug {
		zap.L().Debug("listening on", zap.String("addr", addr))
	}

	if ready != nil {
		ready()
	}

	return p.s.Serve(ln)
}

func (p *Polka) Close() error {
	if p.s == nil {
		return nil
	}
	return p.s.Close()
}

func (p *Polka) Shutdown(ctx context.Context) error {
	if p.s == nil {
		return nil
	}
	return p.s.Shutdown(ctx)
}

// Use appends handlers to the stack unfiltered; they run for every method
// and every path.
func (p *Polka) Use(handlers ...interface{}) *Polka {
	var result *multierror.Error
	for _, handler := range handlers {
		fn, err := ToHandler(handler)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		p.push(fn)
	}

	if err := result.ErrorOrNil(); err != nil {
		panic(err)
	}

	return p
}

// All registers handlers for path regardless of the request method.
func (p *Polka) All(path string, handlers ...interface{}) *Polka {
	return p.Route("", path, handlers...)
}

func (p *Polka) Get(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.GET, path, handlers...)
}

func (p *Polka) Post(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.POST, path, handlers...)
}

func (p *Polka) Patch(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.PATCH, path, handlers...)
}

func (p *Polka) Put(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.PUT, path, handlers...)
}

func (p *Polka) Delete(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.DELETE, path, handlers...)
}

func (p *Polka) Head(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.HEAD, path, handlers...)
}

func (p *Polka) Options(path string, handlers ...interface{}) *Polka {
	return p.Route(strong.OPTIONS, path, handlers...)
}

func (p *Polka) WebSocket(path string, handlers ...interface{}) *Polka {
	handlers = append(handlers[:len(handlers):len(handlers)], func(ctx *httpcontext.Context) error {
		_, err := ctx.Websocket(nil)
		return err
	})

	return p.Route(strong.GET, path, handlers...)
}

// Route appends one synthesized handler that runs the given handlers when
// both method and path match, and falls through otherwise. An empty method
// matches every verb.
func (p *Polka) Route(method, path string, handlers ...interface{}) *Polka {
	if len(handlers) == 0 {
		return p
	}

	handler, err := Compose(handlers)
	if err != nil {
		panic(err)
	}

	if p.o.Debug {
		zap.L().Debug("register route", zap.String("method", method), zap.String("path", path))
	}

	p.push(bindRoute(method, path, handler))

	return p
}

func (p *Polka) push(handler HandlerFunc) {
	p.mu.Lock()
	p.stack = append(p.stack, handler)
	p.mu.Unlock()
}

func (p *Polka) handlerAt(i int) (HandlerFunc, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i >= len(p.stack) {
		return nil, false
	}
	return p.stack[i], true
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
