package service

import (
	"github.com/sirupsen/logrus"

	"travelbook/internal/config"
	"travelbook/internal/identity"
	"travelbook/internal/repository"
	"travelbook/internal/storage"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Book      BookService
	Page      PageService
	Itinerary ItineraryService
	Discovery DiscoveryService
	Tables    TablesService
}

func NewService(
	rep *repository.Repository,
	cfg *config.Config,
	storage storage.Storage,
	verifier *identity.Verifier,
	log *logrus.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(rep.User, verifier, log),
		User:      NewUserService(rep.User, log),
		Book:      NewBookService(rep.Book, rep.Page, rep.Itinerary, storage, log),
		Page:      NewPageService(rep.Book, rep.Page, rep.Itinerary, storage, cfg.Upload.MaxPageImages, log),
		Itinerary: NewItineraryService(rep, storage, cfg.Upload.MaxItineraryImages, log),
		Discovery: NewDiscoveryService(rep.Book, rep.Itinerary),
		Tables:    NewTablesService(rep.Tables),
	}
}
