package handlers

import (
	"net/http"
	"time"

	"travelbook/internal/apperror"
	"travelbook/internal/identity"
	"travelbook/internal/service"
)

const dateOfBirthLayout = "2006-01-02"

type RegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Gender          string `json:"gender" validate:"required"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dob, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
	if err != nil {
		h.writeError(w, r, apperror.Validation("dateOfBirth must be YYYY-MM-DD"))
		return
	}

	session, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Gender:          req.Gender,
		DateOfBirth:     &dob,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setAuthCookie(w, session.Token, session.ExpiresAt)

	// forming the response
	writeSuccess(w, "User registered successfully", AuthResponse{
		Name:  session.User.DisplayName(),
		Email: session.User.Email,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setAuthCookie(w, session.Token, session.ExpiresAt)

	writeSuccess(w, "Logged in successfully", AuthResponse{
		Name:  session.User.DisplayName(),
		Email: session.User.Email,
	}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.CurrentUser(r.Context(), identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "User fetched successfully", AuthResponse{
		Name:  user.DisplayName(),
		Email: user.Email,
	}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.authCookie("", time.Unix(0, 0), -1))
	writeSuccess(w, "Logged out successfully", nil, http.StatusOK)
}

func (h *Handlers) setAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	http.SetCookie(w, h.authCookie(token, expiresAt, maxAge))
}

func (h *Handlers) authCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.Cfg.Auth.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}

	return &http.Cookie{
		Name:     h.Cfg.Auth.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.Cfg.Auth.CookieDomain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Auth.CookieSecure,
		SameSite: sameSite,
	}
}
