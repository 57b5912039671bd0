package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"travelbook/internal/apperror"
	"travelbook/internal/identity"
	"travelbook/internal/models"
	"travelbook/internal/service"
)

type ExperienceRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type ToggleUpvoteRequest struct {
	ExperienceID string `json:"experienceId" validate:"required"`
}

type ToggleUpvoteResponse struct {
	Experience  *models.Experience `json:"experience"`
	UpvoteCount int                `json:"upvoteCount"`
	Action      string             `json:"action"`
}

func (h *Handlers) GetItineraries(w http.ResponseWriter, r *http.Request) {
	feed, err := h.DiscoveryService.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Itineraries fetched successfully", feed, http.StatusOK)
}

func (h *Handlers) GetItineraryDescription(w http.ResponseWriter, r *http.Request) {
	detail, err := h.ItineraryService.GetDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Itinerary fetched successfully", detail, http.StatusOK)
}

func (h *Handlers) AddNewItinerary(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.writeError(w, r, err)
		return
	}

	images, closeFiles, err := formFiles(r, "images")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer closeFiles()

	in := service.ItineraryInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Caption:     formValue(r, "caption"),
		Category:    models.Category(formValue(r, "category")),
		Experience:  formValue(r, "experience"),
		Images:      images,
	}

	if raw := strings.TrimSpace(formValue(r, "rating")); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, r, apperror.Validation("Rating must be a number"))
			return
		}
		in.Rating = rating
	}

	rawLocation := strings.TrimSpace(formValue(r, "location"))
	if rawLocation == "" || rawLocation == "null" {
		h.writeError(w, r, apperror.Validation("Location is required"))
		return
	}
	if in.Location, err = models.ParseLocation([]byte(rawLocation)); err != nil {
		h.writeError(w, r, apperror.Validation("Invalid location"))
		return
	}

	created, err := h.ItineraryService.Create(r.Context(), mux.Vars(r)["pageId"], identity.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Itinerary created successfully", created, http.StatusCreated)
}

func (h *Handlers) NewExperience(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	experience, err := h.ItineraryService.AddExperience(r.Context(), mux.Vars(r)["itineraryId"], identity.UserID(r.Context()), req.Comment)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Experience added successfully", experience, http.StatusCreated)
}

func (h *Handlers) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	var req ToggleUpvoteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.ItineraryService.ToggleUpvote(r.Context(), mux.Vars(r)["itineraryId"], req.ExperienceID, identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Upvote "+result.Action(), ToggleUpvoteResponse{
		Experience:  result.Experience,
		UpvoteCount: result.UpvoteCount,
		Action:      result.Action(),
	}, http.StatusOK)
}
