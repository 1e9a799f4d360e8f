package http

import (
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Verify credentials and open a session. Returns the access, refresh and
//	@Description	email tokens minted for this login event.
//	@Tags			Accounts
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string				true	"Account email"
//	@Param			password	formData	string				true	"Password"
//	@Success		200			{object}	jwtx.TokenSet		"access_token, refresh_token, email_token, token_type, expires_in"
//	@Failure		400			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid form data")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	set, err := h.AccountService.Login(ctx, email, password)
	if err != nil {
		log.Info("login rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, set)
}
