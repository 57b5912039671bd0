package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"travelbook/internal/apperror"
	"travelbook/internal/identity"
	"travelbook/internal/models"
	"travelbook/internal/service"
)

type AttachItineraryRequest struct {
	ItineraryID string `json:"itineraryId" validate:"required"`
}

func (h *Handlers) AddPageDetails(w http.ResponseWriter, r *http.Request) {
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

	in := service.Exploration{
		Title:       formField(r, "title"),
		Description: formField(r, "description"),
		Tips:        formField(r, "tips"),
		Images:      images,
	}

	// location arrives as a JSON document inside the form
	if raw := formValue(r, "location"); raw != "" {
		loc, err := models.ParseLocation([]byte(raw))
		if err != nil {
			h.writeError(w, r, apperror.Validation("Invalid location"))
			return
		}
		in.Location = &loc
	}

	page, err := h.PageService.RecordExploration(r.Context(), mux.Vars(r)["pageId"], identity.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Page details updated successfully", page, http.StatusOK)
}

func (h *Handlers) AddItineraryToPage(w http.ResponseWriter, r *http.Request) {
	var req AttachItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.PageService.AttachItinerary(r.Context(), mux.Vars(r)["pageId"], req.ItineraryID, identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Itinerary added to page successfully", page, http.StatusOK)
}

func (h *Handlers) DeleteItineraryFromPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.PageService.DetachItinerary(r.Context(), vars["pageId"], vars["itineraryId"], identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Itinerary removed from page successfully", nil, http.StatusOK)
}
