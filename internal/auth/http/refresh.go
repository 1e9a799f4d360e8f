package http

import (
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

type RefreshHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchange a live refresh token for fresh access and email tokens. The
//	@Description	refresh token is presented as the bearer credential and returned unchanged.
//	@Tags			Tokens
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	jwtx.TokenSet		"access_token, refresh_token, email_token, token_type, expires_in"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/token/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw := httpx.BearerToken(r)
	if raw == "" {
		httpx.WriteBearerError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	set, err := h.AccountService.Refresh(ctx, raw)
	if err != nil {
		log.Info("refresh rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, set)
}
