package httpcontext

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// ResponseWriter wraps the transport's http.ResponseWriter and keeps track of
// whether the response has been started, the status code and the number of
// bytes written. Handlers use it as a plain http.ResponseWriter; the
// dispatcher consults Written before producing its default responses.
type ResponseWriter struct {
	res     http.ResponseWriter
	status  int
	size    int
	written bool
	onWrite []func(status int)
}

var (
	_ http.ResponseWriter = (*ResponseWriter)(nil)
	_ http.Flusher        = (*ResponseWriter)(nil)
	_ http.Hijacker       = (*ResponseWriter)(nil)
)

func NewResponseWriter(res http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{res: res}
}

func (w *ResponseWriter) Header() http.Header {
	return w.res.Header()
}

// Status returns the status code of the response, or 200 when a body was
// written without an explicit WriteHeader.
func (w *ResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Size returns the number of body bytes written so far.
func (w *ResponseWriter) Size() int {
	return w.size
}

// Written reports whether the response headers have been sent.
func (w *ResponseWriter) Written() bool {
	return w.written
}

// OnWriteHeader registers fn to be called once, when the response headers are
// sent. Used by middleware that wants to observe the final status.
func (w *ResponseWriter) OnWriteHeader(fn func(status int)) {
	w.onWrite = append(w.onWrite, fn)
}

func (w *ResponseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.res.WriteHeader(status)
	for _, fn := range w.onWrite {
		fn(status)
	}
	w.onWrite = nil
}

func (w *ResponseWriter) Write(bs []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	size, err := w.res.Write(bs)
	w.size += size
	return size, err
}

func (w *ResponseWriter) Flush() {
	if flusher, ok := w.res.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack hands over the connection. A successful hijack marks the response
// as written; the headers on the wire are the caller's business from then on.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.res.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("the response writer does not support hijacking")
	}
	conn, rw, err := hijacker.Hijack()
	if err == nil {
		w.written = true
	}
	return conn, rw, err
}
