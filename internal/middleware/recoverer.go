package middleware

import (
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

// Recoverer turns a handler panic into a JSON 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logx.Error().
					Interface("panic", rec).
					Str("request_id", chimw.GetReqID(r.Context())).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				utils.RespondError(w, http.StatusInternalServerError, errx.SystemErrorMessage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
