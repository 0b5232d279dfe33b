package filesystem

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/kildevaeld/strong"

	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/httpcontext"
)

// FileSystem serves files below a mount point. A path that does not resolve
// to a regular file falls through to the next stack entry.
type FileSystem struct {
	fs http.FileSystem
}

func (f *FileSystem) Handle(ctx *httpcontext.Context, next polka.Next) {
	if ctx.Method() != strong.GET && ctx.Method() != strong.HEAD {
		next(nil)
		return
	}

	path := ctx.Path()

	file, err := f.fs.Open(path)
	if err != nil {
		next(nil)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		next(err)
		return
	}
	if stat.IsDir() {
		next(nil)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = strong.MIMEOctetStream
	}

	res := ctx.Response()
	res.Header().Set(strong.HeaderContentType, contentType)
	res.Header().Set(strong.HeaderContentLength, fmt.Sprintf("%d", stat.Size()))
	res.WriteHeader(strong.StatusOK)

	if ctx.Method() == strong.HEAD {
		return
	}

	if _, err = io.Copy(res, file); err != nil {
		next(err)
	}
}

func New(dir http.FileSystem) polka.Mountable {
	return &FileSystem{dir}
}
