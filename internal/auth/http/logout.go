package http

import (
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

type LogoutHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Blacklist the presented access token, and with it the refresh and email
//	@Description	tokens from the same login event, then close the session.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		204	"session closed"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw := httpx.BearerToken(r)
	if raw == "" {
		httpx.WriteBearerError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := h.AccountService.Logout(ctx, raw); err != nil {
		log.Info("logout rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
