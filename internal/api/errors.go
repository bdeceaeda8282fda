package api

import (
	"net/http"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps service errors to HTTP status codes. Missing
// resources become 404; everything else, including constraint violations,
// surfaces as 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError maps err to a status code and writes the standard
// error body, carrying the error message through verbatim.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err.Error(), err)
}
