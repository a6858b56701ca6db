// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorLogger logs handler failures with request context and renders the
// matching error page. Every logged failure gets an incident id that is
// shown to the user and written to the log.
//
//	h.ErrLog.LogServerError(w, r, "list farmers failed", err, "A database error occurred.", "/admin/system-overview")
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	id := e.write(zap.ErrorLevel, r, msg, err)
	RenderServerError(w, r, http.StatusInternalServerError, userMsg, id, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	id := e.write(zap.WarnLevel, r, msg, err)
	RenderServerError(w, r, http.StatusBadRequest, userMsg, id, backURL)
}

// LogNotFound logs at info level and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	id := e.write(zap.InfoLevel, r, msg, err)
	RenderServerError(w, r, http.StatusNotFound, userMsg, id, backURL)
}

// LogForbidden logs at warn level and renders the access denied page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg, userMsg string) {
	e.write(zap.WarnLevel, r, msg, nil)
	RenderForbidden(w, r, userMsg, "")
}

func (e *ErrorLogger) write(level zapcore.Level, r *http.Request, msg string, err error) string {
	id := uuid.NewString()
	fields := []zap.Field{
		zap.String("incident", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok {
		fields = append(fields, zap.String("role", u.Role), zap.String("user", u.Name))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := e.log.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
	return id
}
