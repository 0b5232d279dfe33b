package polka_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/httpcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMount(t *testing.T) {
	t.Run("rebases_path_for_sub_routes", func(t *testing.T) {
		sub := polka.New()
		var id string
		sub.Get("/:id", func(ctx *httpcontext.Context) error {
			id = ctx.Params().ByName("id")
			return ctx.Text(id)
		})

		app := polka.New()
		app.Mount("/api", sub)

		rec := request(app, "GET", "/api/42")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "42", id)
	})

	t.Run("outside_prefix_falls_through", func(t *testing.T) {
		sub := polka.New()
		sub.Get("/x", func(ctx *httpcontext.Context) error {
			return ctx.Text("sub")
		})

		app := polka.New()
		app.Mount("/api", sub)

		var seen string
		app.Use(func(ctx *httpcontext.Context, next polka.Next) {
			seen = ctx.Path()
			next(nil)
		})

		rec := request(app, "GET", "/other/x")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "/other/x", seen)
	})

	t.Run("path_restored_after_unmatched_sub_dispatch", func(t *testing.T) {
		sub := polka.New()

		app := polka.New()
		app.Mount("/api", sub)

		var seen string
		app.Use(func(ctx *httpcontext.Context, next polka.Next) {
			seen = ctx.Path()
			next(nil)
		})

		request(app, "GET", "/api/nothing")
		assert.Equal(t, "/api/nothing", seen)
	})

	t.Run("mount_middleware_scoped_to_prefix", func(t *testing.T) {
		sub := polka.New()
		sub.Get("/x", func(ctx *httpcontext.Context) error {
			return ctx.Text("sub")
		})

		count := 0
		mw := func(ctx *httpcontext.Context, next polka.Next) {
			count++
			next(nil)
		}

		app := polka.New()
		app.Mount("/api", sub, mw)

		request(app, "GET", "/api/x")
		request(app, "GET", "/elsewhere")

		assert.Equal(t, 1, count)
	})
}

func TestRest(t *testing.T) {
	rest := polka.NewRest("user").
		List(func(ctx *httpcontext.Context) error {
			return ctx.JSON([]string{"a", "b"})
		}).
		Get(func(ctx *httpcontext.Context, id string) error {
			return ctx.Text("user " + id)
		}).
		Delete(func(ctx *httpcontext.Context, id string) error {
			ctx.SetStatusCode(http.StatusNoContent)
			return ctx.Text("")
		})

	app := polka.New()
	app.Mount("/users", rest)

	t.Run("list", func(t *testing.T) {
		rec := request(app, "GET", "/users")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `["a","b"]`, rec.Body.String())
	})

	t.Run("get_by_id", func(t *testing.T) {
		rec := request(app, "GET", "/users/42")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user 42", rec.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		rec := request(app, "DELETE", "/users/42")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown_verb_falls_through", func(t *testing.T) {
		rec := request(app, "PATCH", "/users")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListen(t *testing.T) {
	app := polka.New()
	app.Get("/", func(ctx *httpcontext.Context) error {
		return ctx.Text("hello")
	})

	ready := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- app.Listen("127.0.0.1:0", func() {
			close(ready)
		})
	}()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("listen never became ready")
	}

	require.NoError(t, app.Close())

	select {
	case err := <-done:
		assert.Equal(t, http.ErrServerClosed, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listen never returned after close")
	}
}

func TestWebSocket(t *testing.T) {
	app := polka.New()
	app.WebSocket("/ws")

	srv := httptest.NewServer(app)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, res, err := websocket.DefaultDialer.Dial(url+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)
}
