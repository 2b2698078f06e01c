package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader is the request and response header carrying the trace
// identifier.
const traceIDHeader = "X-Trace-ID"

// withTraceID is an HTTP middleware that tags every request with a trace
// identifier.
//
// An identifier supplied by the caller in the "X-Trace-ID" header is kept;
// otherwise a fresh UUID is generated. The identifier is attached as a
// "trace_id" field on a child logger stored in the request context, so
// every log line emitted while serving the request can be correlated, and
// it is echoed back on the response so the caller can reference it too.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(log.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
