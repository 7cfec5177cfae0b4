package middleware

import (
	"bufio"
	"net"
	"net/http"
)

// sessionWriter is a minimal wrapper around http.ResponseWriter that emits
// the session cookie immediately before the first header write. Once emit
// fails, the error handler owns the response and all handler output is
// dropped.
type sessionWriter struct {
	http.ResponseWriter
	emit     func() error
	onError  func(error)
	written  bool
	failed   bool
	hijacked bool
}

func (w *sessionWriter) WriteHeader(status int) {
	if w.written || w.failed {
		return
	}
	if err := w.emit(); err != nil {
		w.failed = true
		w.onError(err)
		return
	}
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	if w.failed {
		// Pretend success so handlers don't treat the abort as an I/O error.
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
// Flushing commits the response headers, so the cookie is emitted first.
func (w *sessionWriter) Flush() {
	if !w.written && !w.failed {
		w.WriteHeader(http.StatusOK)
	}
	if w.failed {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker so WebSocket upgrades pass through.
// Hijacked connections bypass cookie emission entirely.
func (w *sessionWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	w.hijacked = true
	return hj.Hijack()
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
