package httpcontext

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kildevaeld/dict"
	"github.com/kildevaeld/polka/pathmatch"
	"github.com/kildevaeld/strong"
)

// RequestBody reads the request body at most once and decodes it with the
// codec registered for the request's content type.
type RequestBody struct {
	reader      io.ReadCloser
	contentType string
	done        bool
}

func (r *RequestBody) Read(bs []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	read, err := r.reader.Read(bs)
	if err == io.EOF {
		r.done = true
	}
	return read, err
}

func (r *RequestBody) Close() error {
	r.done = true
	return r.reader.Close()
}

func (r *RequestBody) ReadAll() ([]byte, error) {
	bs, err := ioutil.ReadAll(r.reader)
	r.done = true
	return bs, err
}

func (r *RequestBody) Decode(v interface{}) error {
	if r.done {
		return io.EOF
	}

	bs, err := r.ReadAll()
	defer r.Close()
	if err != nil {
		return err
	}

	decoder := GetDecoder(r.contentType)
	if decoder == nil {
		return fmt.Errorf("cannot decode content type '%s'", r.contentType)
	}

	return decoder.Decode(bs, v)
}

// Context is the per-request object handed to every handler. It carries the
// request, the tracking response writer, bound path parameters and arbitrary
// user values. A Context is created fresh for each request and shared by all
// handlers the request passes through.
type Context struct {
	req     *http.Request
	res     *ResponseWriter
	reqBody *RequestBody
	params  pathmatch.Params
	path    string
	status  int
	u       dict.Map
}

func New(res http.ResponseWriter, req *http.Request) *Context {
	return &Context{
		req:  req,
		res:  NewResponseWriter(res),
		path: req.URL.Path,
	}
}

func (c *Context) Request() *http.Request {
	return c.req
}

func (c *Context) Response() *ResponseWriter {
	return c.res
}

func (c *Context) Method() string {
	return c.req.Method
}

// Path returns the path the dispatcher matches against. It starts as the
// request URL path and is rebased while the request runs inside a mounted
// sub-dispatcher.
func (c *Context) Path() string {
	return c.path
}

func (c *Context) SetPath(path string) *Context {
	c.path = path
	return c
}

func (c *Context) Params() pathmatch.Params {
	return c.params
}

func (c *Context) SetParams(params pathmatch.Params) *Context {
	c.params = params
	return c
}

func (c *Context) RequestBody() *RequestBody {
	if c.reqBody == nil {
		c.reqBody = &RequestBody{
			reader:      c.req.Body,
			contentType: c.req.Header.Get(strong.HeaderContentType),
		}
	}
	return c.reqBody
}

func (c *Context) Header() http.Header {
	return c.res.Header()
}

func (c *Context) SetContentType(contentType string) *Context {
	c.res.Header().Set(strong.HeaderContentType, contentType)
	return c
}

// SetStatusCode sets the status used by the next responder call. It has no
// effect once the response has been written.
func (c *Context) SetStatusCode(status int) *Context {
	c.status = status
	return c
}

func (c *Context) StatusCode() int {
	return c.status
}

func (c *Context) Text(str string) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMETextPlain)
	return c.bytes([]byte(str))
}

func (c *Context) JSON(v interface{}) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMEApplicationJSONCharsetUTF8)

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.bytes(bs)
}

func (c *Context) HTML(str string) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMETextHTMLCharsetUTF8)
	return c.bytes([]byte(str))
}

func (c *Context) Bytes(bs []byte) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMEOctetStream)
	return c.bytes(bs)
}

func (c *Context) bytes(bs []byte) error {
	c.res.Header().Set(strong.HeaderContentLength, fmt.Sprintf("%d", len(bs)))

	status := c.status
	if status <= 0 {
		status = strong.StatusOK
	}
	c.res.WriteHeader(status)

	_, err := c.res.Write(bs)
	return err
}

func (c *Context) Error(status int, msg ...interface{}) error {
	return strong.NewHTTPError(status, msg...)
}

func (c *Context) Redirect(status int, path string) error {
	c.res.Header().Set(strong.HeaderLocation, path)
	c.res.WriteHeader(status)
	return nil
}

func (c *Context) SetUserValue(k string, v interface{}) *Context {
	if c.u == nil {
		c.u = dict.Map{}
	}
	c.u[k] = v
	return c
}

func (c *Context) UserValue(k string) interface{} {
	if c.u == nil {
		return nil
	}
	return c.u[k]
}

func (c *Context) Websocket(upgrader *websocket.Upgrader) (*websocket.Conn, error) {
	if upgrader == nil {
		return websocket.Upgrade(c.res, c.req, c.Header(), 1024, 1024)
	}
	return upgrader.Upgrade(c.res, c.req, c.Header())
}
