package handlers

import (
	"net/http"

	"travelbook/internal/identity"
	"travelbook/internal/service"
)

type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName" validate:"omitnil,min=1"`
	LastName     *string `json:"lastName" validate:"omitnil,min=1"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
	Email        *string `json:"email" validate:"omitnil,email"`
	PhoneNumber  *string `json:"phoneNumber"`
	Gender       *string `json:"gender"`
}

type ResetPasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetProfile(r.Context(), identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "User profile fetched successfully", user, http.StatusOK)
}

func (h *Handlers) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), identity.UserID(r.Context()), service.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Gender:       req.Gender,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "User profile updated successfully", user, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	err := h.UserService.ResetPassword(r.Context(), identity.UserID(r.Context()), req.OldPassword, req.NewPassword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Password updated successfully", nil, http.StatusOK)
}
