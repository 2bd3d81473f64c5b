package middleware

import (
	"net/http"

	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// PathUUID answers notFound when the path parameter cannot be a row id, so
// malformed ids never reach a UUID column.
func PathUUID(param string, notFound error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := validator.ValidateVar(chi.URLParam(r, param), "required,uuid"); err != nil {
				response.WithError(w, notFound)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
