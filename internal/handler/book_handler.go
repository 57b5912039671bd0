package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"travelbook/internal/apperror"
	"travelbook/internal/identity"
	"travelbook/internal/models"
	"travelbook/internal/service"
)

type TitleRequest struct {
	Title string `json:"title" validate:"required"`
}

func (h *Handlers) GetMyBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.BookService.ListOwned(r.Context(), identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Books fetched successfully", books, http.StatusOK)
}

func (h *Handlers) GetBooksWithPages(w http.ResponseWriter, r *http.Request) {
	books, err := h.BookService.ListOwnedWithPages(r.Context(), identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Books fetched successfully", books, http.StatusOK)
}

func (h *Handlers) GetBookDescription(w http.ResponseWriter, r *http.Request) {
	book, err := h.BookService.GetPublicDescription(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Book fetched successfully", book, http.StatusOK)
}

func (h *Handlers) GetPlanningBookDescription(w http.ResponseWriter, r *http.Request) {
	book, err := h.BookService.GetOwnedPlanningView(r.Context(), mux.Vars(r)["id"], identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Book fetched successfully", book, http.StatusOK)
}

func (h *Handlers) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	book, err := h.BookService.Create(r.Context(), identity.UserID(r.Context()), req.Title)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Book created successfully", book, http.StatusCreated)
}

// AddBookDetails applies a partial update. Only the fields present in the form change.
func (h *Handlers) AddBookDetails(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.writeError(w, r, err)
		return
	}

	files, closeFiles, err := formFiles(r, "image")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer closeFiles()

	if len(files) > 1 {
		h.writeError(w, r, apperror.Validation("Only one book image is allowed"))
		return
	}

	update := service.BookUpdate{
		Title:       formField(r, "title"),
		Description: formField(r, "description"),
		Tags:        formField(r, "tags"),
	}
	if v := formField(r, "visibility"); v != nil {
		visibility := models.Visibility(*v)
		update.Visibility = &visibility
	}
	if v := formField(r, "status"); v != nil {
		status := models.Status(*v)
		update.Status = &status
	}
	if len(files) == 1 {
		update.Image = &files[0]
	}

	book, err := h.BookService.UpdateDetails(r.Context(), mux.Vars(r)["bookId"], identity.UserID(r.Context()), update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Book details updated successfully", book, http.StatusOK)
}

func (h *Handlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	err := h.BookService.Delete(r.Context(), mux.Vars(r)["bookId"], identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Book and its pages deleted successfully", nil, http.StatusOK)
}

func (h *Handlers) AddPageToBook(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.PageService.AddPage(r.Context(), mux.Vars(r)["bookId"], identity.UserID(r.Context()), req.Title)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Page added successfully", page, http.StatusCreated)
}

func (h *Handlers) DeletePageFromBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.PageService.DeletePage(r.Context(), vars["bookId"], vars["pageId"], identity.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "Page deleted successfully", nil, http.StatusOK)
}
