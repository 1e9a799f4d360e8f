package http

import (
	"net/http"
	"strconv"

	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"
)

type AdminBanHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Ban Account Endpoint
//	@Description	Set or clear the ban flag on an account. Requires a moderator or admin role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email	path		string				true	"Target account email"
//	@Param			banned	formData	bool				false	"Ban state, defaults to true"
//	@Success		200		{object}	UserResponse		"updated account"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/users/{email}/ban [patch].
func (h *AdminBanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	target := r.PathValue("email")
	if target == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email path segment is required")
		return
	}

	banned := true
	if err := r.ParseForm(); err == nil {
		if v := r.FormValue("banned"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "banned must be a boolean")
				return
			}
			banned = parsed
		}
	}

	user, err := h.AccountService.SetBanned(ctx, target, banned)
	if err != nil {
		log.Info("ban update rejected", "target", target, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
