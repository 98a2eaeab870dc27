package http

import (
	"net/http"

	mw "github.com/savithru/pms-backend/internal/adapters/primary/http/middleware"
	"github.com/savithru/pms-backend/internal/auth"
)

// getClaims extracts validated user claims from the request context. It
// writes the 401 response itself so handlers can simply return.
func getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}
