package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"travelbook/internal/config"
	"travelbook/internal/service"
)

// HealthChecker is the store connection as seen by the health endpoint.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService      service.AuthService
	UserService      service.UserService
	BookService      service.BookService
	PageService      service.PageService
	ItineraryService service.ItineraryService
	DiscoveryService service.DiscoveryService
	TablesService    service.TablesService
	DB               HealthChecker
	Cfg              *config.Config
	Log              *logrus.Logger
	Validate         *validator.Validate
}

func NewHandlers(services *service.Service, db HealthChecker, cfg *config.Config, log *logrus.Logger) *Handlers {
	return &Handlers{
		AuthService:      services.Auth,
		UserService:      services.User,
		BookService:      services.Book,
		PageService:      services.Page,
		ItineraryService: services.Itinerary,
		DiscoveryService: services.Discovery,
		TablesService:    services.Tables,
		DB:               db,
		Cfg:              cfg,
		Log:              log,
		Validate:         validator.New(validator.WithRequiredStructEnabled()),
	}
}
