package telemetry

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adiwahyudi/board-api/internal/apperr"
)

// Interceptor is the single funnel for unhandled failures. Every
// request-time error and every startup error passes through it; it
// always produces a client response (or, for startup, a log line) and
// a best-effort telemetry attempt, and never blocks on the collector.
type Interceptor struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewInterceptor(resolver *Resolver, dispatcher *Dispatcher, logger *slog.Logger) *Interceptor {
	return &Interceptor{resolver: resolver, dispatcher: dispatcher, logger: logger}
}

// HandleRequestFailure logs the error, fires a detached failure report
// when a collector is configured, and writes the client-facing JSON
// error response. The response is written immediately; it never waits
// on the dispatch outcome.
func (i *Interceptor) HandleRequestFailure(w http.ResponseWriter, req *http.Request, err error) {
	i.logger.Error("unhandled request error",
		"method", req.Method,
		"path", req.URL.Path,
		"error", err,
	)

	boardID, _ := i.resolver.Resolve(req)

	if i.dispatcher.Enabled() {
		trace, ok := apperr.TraceOf(err)
		if !ok {
			trace = NoStackTrace
		}
		report := Report{
			TenantID:      boardID,
			Timestamp:     time.Now().UTC(),
			StackTrace:    trace,
			Message:       messageOf(err),
			ErrorKind:     apperr.KindOf(err),
			RequestPath:   req.URL.Path,
			RequestMethod: req.Method,
			UserAgent:     req.UserAgent(),
		}
		if f, ok := Locate(trace); ok {
			report.SourceFile = f.File
			report.SourceLine = f.Line
		}
		i.dispatcher.DispatchDetached(report)
	}

	status := apperr.StatusOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   http.StatusText(status),
		"message": messageOf(err),
	})
}

// Middleware funnels panicking handlers into HandleRequestFailure so
// failures from deferred or asynchronous handler work cannot escape
// without a client response and a report.
func (i *Interceptor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				i.HandleRequestFailure(w, req, apperr.Recovered(v))
			}
		}()
		next.ServeHTTP(w, req)
	})
}

// HandleStartupFailure reports a failure that happened before the
// server could serve requests. The reduced report carries the STARTUP
// sentinel in place of request context and is dispatched detached; the
// caller is expected to exit non-zero afterwards, so delivery is
// strictly best-effort.
func (i *Interceptor) HandleStartupFailure(err error) {
	i.logger.Error("startup failure", "error", err)

	if !i.dispatcher.Enabled() {
		return
	}

	trace, ok := apperr.TraceOf(err)
	if !ok {
		trace = NoStackTrace
	}
	firstLine, _, _ := strings.Cut(trace, "\n")
	boardID, _ := i.resolver.ResolveStatic()

	i.dispatcher.DispatchDetached(Report{
		TenantID:      boardID,
		Timestamp:     time.Now().UTC(),
		SourceFile:    firstLine,
		StackTrace:    trace,
		Message:       messageOf(err),
		ErrorKind:     apperr.KindOf(err),
		RequestPath:   StartupOrigin,
		RequestMethod: StartupOrigin,
		UserAgent:     StartupAgent,
	})
}

func messageOf(err error) string {
	if err == nil || err.Error() == "" {
		return UnknownMessage
	}
	return err.Error()
}
