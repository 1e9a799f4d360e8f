package http

import (
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

type ConfirmEmailHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Email Confirmation Endpoint
//	@Description	Redeem an email-scope token and mark the account verified. Safe to call
//	@Description	more than once.
//	@Tags			Accounts
//	@Produce		json
//	@Param			token	query		string				true	"Email confirmation token"
//	@Success		200		{object}	UserResponse		"confirmed account"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/confirm-email [get].
func (h *ConfirmEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw := r.URL.Query().Get("token")
	if raw == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "token query parameter is required")
		return
	}

	user, err := h.AccountService.ConfirmEmail(ctx, raw)
	if err != nil {
		log.Info("email confirmation rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
