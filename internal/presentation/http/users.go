package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/waveshop/waveshop/internal/application/auth"
	"github.com/waveshop/waveshop/internal/domain/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	u, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Lastname: req.Lastname,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	ok(w, envelope{"user_id": u.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	ok(w, envelope{"token": session})
}

// handleAuthCheck reports the resolved identity, the way the storefront
// bootstraps its session on page load.
func (h *Handler) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())

	ok(w, envelope{
		"user_id":  ident.UserID,
		"email":    ident.Email,
		"name":     ident.Name,
		"lastname": ident.Lastname,
		"isAdmin":  ident.IsAdmin(),
		"cart":     cartView(ident.Cart),
		"history":  historyView(ident.History),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	if err := h.auth.Logout(r.Context(), ident.UserID); err != nil {
		serviceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	ok(w, nil)
}

type updateProfileRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	u, err := h.auth.UpdateProfile(r.Context(), ident.UserID, auth.ProfileUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Lastname: req.Lastname,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	ok(w, envelope{
		"email":    u.Email,
		"name":     u.Name,
		"lastname": u.Lastname,
	})
}

type resetRequestRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Email == "" {
		badRequest(w, errors.New("email is required"))
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		// An unknown email still gets a success answer so the endpoint
		// does not enumerate accounts.
		if errors.Is(err, user.ErrNotFound) {
			ok(w, nil)
			return
		}
		serviceError(w, r, err)
		return
	}
	ok(w, nil)
}

type resetConfirmRequest struct {
	Password string `json:"password"`
}

func (h *Handler) handleResetConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		badRequest(w, errors.New("token is required"))
		return
	}

	var req resetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	if err := h.auth.ResetPassword(r.Context(), token, req.Password); err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, nil)
}
