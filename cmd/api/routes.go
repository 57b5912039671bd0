package main

import (
	"net/http"

	"github.com/gorilla/mux"

	handlers "travelbook/internal/handler"
	"travelbook/internal/middleware"
)

func newRouter(h *handlers.Handlers, metrics *middleware.Metrics) *mux.Router {
	router := mux.NewRouter()
	if metrics != nil {
		router.Use(metrics.Middleware)
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/book/getBookDescription/{id}", h.GetBookDescription).Methods(http.MethodGet)
	api.HandleFunc("/itinerary/getItineraries", h.GetItineraries).Methods(http.MethodGet)
	api.HandleFunc("/itinerary/getItineraryDescritpion/{id}", h.GetItineraryDescription).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth)

	protected.HandleFunc("/auth/me", h.GetCurrentUser).Methods(http.MethodGet)

	protected.HandleFunc("/user/userProfile", h.GetUserProfile).Methods(http.MethodGet)
	protected.HandleFunc("/user/updateUserProfile", h.UpdateUserProfile).Methods(http.MethodPost)
	protected.HandleFunc("/user/resetPassword", h.ResetPassword).Methods(http.MethodPost)

	protected.HandleFunc("/book/myBooks", h.GetMyBooks).Methods(http.MethodGet)
	protected.HandleFunc("/book/getBookWithPages", h.GetBooksWithPages).Methods(http.MethodGet)
	protected.HandleFunc("/book/getPlanningBookDescription/{id}", h.GetPlanningBookDescription).Methods(http.MethodGet)
	protected.HandleFunc("/book/createBook", h.CreateBook).Methods(http.MethodPost)
	protected.HandleFunc("/book/{bookId}/addBookDetails", h.AddBookDetails).Methods(http.MethodPut)
	protected.HandleFunc("/book/deleteBook/{bookId}", h.DeleteBook).Methods(http.MethodDelete)
	protected.HandleFunc("/book/{bookId}/addPageToBook", h.AddPageToBook).Methods(http.MethodPost)
	protected.HandleFunc("/book/{bookId}/deletePageFromBook/{pageId}", h.DeletePageFromBook).Methods(http.MethodDelete)

	protected.HandleFunc("/page/{pageId}/addPageDetails", h.AddPageDetails).Methods(http.MethodPost)
	protected.HandleFunc("/page/{pageId}/addItinerariesToPage", h.AddItineraryToPage).Methods(http.MethodPost)
	protected.HandleFunc("/page/{pageId}/itinerary/{itineraryId}", h.DeleteItineraryFromPage).Methods(http.MethodDelete)

	protected.HandleFunc("/itinerary/{pageId}/addNewItinerary", h.AddNewItinerary).Methods(http.MethodPost)
	protected.HandleFunc("/itinerary/{itineraryId}/newExperience", h.NewExperience).Methods(http.MethodPost)
	protected.HandleFunc("/itinerary/{itineraryId}/toggleUpvote", h.ToggleUpvote).Methods(http.MethodPost)

	return router
}
