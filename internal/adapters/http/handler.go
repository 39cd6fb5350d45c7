package http

import (
	"errors"
	"net/http"

	"evalportal/internal/adapters/http/pages"
	"evalportal/internal/adapters/http/response"
	httpErrors "evalportal/internal/platform/http"
	"evalportal/internal/platform/logger"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler answers API routes: errors become JSON bodies.
func ErrorHandler(next HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := next(w, r)
		if err == nil {
			return
		}

		if !httpErrors.IsExpected(err) {
			logUnexpected(r, err)
		}
		status := httpErrors.StatusOf(err)
		response.RespondError(w, status, errors.New(httpErrors.PublicMessage(err, "internal server error")))
	}
}

// PageErrorHandler answers page routes: errors are shown on the error page.
// Without a renderer, or if the error page itself fails, a plain text body is
// written instead.
func PageErrorHandler(renderer *pages.Renderer) func(next HandlerFunc) http.HandlerFunc {
	return func(next HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			err := next(w, r)
			if err == nil {
				return
			}

			if !httpErrors.IsExpected(err) {
				logUnexpected(r, err)
			}
			status := httpErrors.StatusOf(err)
			message := httpErrors.PublicMessage(err, "Erro interno do servidor.")

			if renderer != nil {
				doc, renderErr := renderer.Document(pages.ErrorPage, pages.View{
					Title: http.StatusText(status),
					Body: errorBody{
						Status:  status,
						Message: message,
					},
				})
				if renderErr == nil && pages.Write(w, status, doc) == nil {
					return
				}
			}

			http.Error(w, message, status)
		}
	}
}

type errorBody struct {
	Status  int
	Message string
}

func logUnexpected(r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("Unexpected server error",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("remote_addr", r.RemoteAddr),
		logger.Error(err))
}
