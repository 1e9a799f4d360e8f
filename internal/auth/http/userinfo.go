package http

import (
	"net/http"

	"github.com/snapvault/snapvault/pkg/httpx"
)

type UserInfoHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Get user information
//	@Description	Returns the authenticated account behind the presented access token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserResponse		"authenticated account"
//	@Failure		401	{object}	httpx.ErrorResponse	"invalid or missing access token"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromCtx(r.Context())
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
