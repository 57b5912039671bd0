package service

import (
	"context"

	"travelbook/internal/models"
	"travelbook/internal/repository"
)

type DiscoveryService interface {
	ListAll(ctx context.Context) (*models.Discovery, error)
}

type discoveryService struct {
	bookRepo      repository.BookRepository
	itineraryRepo repository.ItineraryRepository
}

func NewDiscoveryService(bookRepo repository.BookRepository, itineraryRepo repository.ItineraryRepository) DiscoveryService {
	return &discoveryService{bookRepo: bookRepo, itineraryRepo: itineraryRepo}
}

// ListAll returns every itinerary and every public book. It needs no identity.
func (s *discoveryService) ListAll(ctx context.Context) (*models.Discovery, error) {
	itineraries, err := s.itineraryRepo.ListDiscovery(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.bookRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Discovery{Itineraries: itineraries, PublicBooks: books}, nil
}
