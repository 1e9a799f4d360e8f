package http

import (
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Register Account Endpoint
//	@Description	Create a new account. The response includes the email confirmation token;
//	@Description	delivery of the confirmation mail is the caller's responsibility.
//	@Tags			Accounts
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string				true	"Account email, also the token subject"
//	@Param			username	formData	string				true	"Display name, unique"
//	@Param			password	formData	string				true	"Password"
//	@Success		201			{object}	RegisterResponse	"user, email_token"
//	@Failure		400			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		409			{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid form data")
		return
	}

	email := r.FormValue("email")
	username := r.FormValue("username")
	password := r.FormValue("password")

	if email == "" || username == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email, username and password are required")
		return
	}

	user, emailToken, err := h.AccountService.Register(ctx, email, username, password)
	if err != nil {
		log.Info("registration rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		User:       newUserResponse(user),
		EmailToken: emailToken,
	})
}
