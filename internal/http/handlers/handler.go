package handlers

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "busadmin/internal/config"
	intdb "busadmin/internal/db"
	"busadmin/internal/http/middleware"
	"busadmin/internal/repositories"
	"busadmin/internal/services"
)

// Handler serves the admin API. Services are built per request so they carry
// the request ID into their logs.
type Handler struct {
	DB       *sql.DB
	Secret   []byte
	TokenTTL time.Duration
	Location *time.Location
}

func New(db *sql.DB, env intconfig.Env) *Handler {
	return &Handler{
		DB:       db,
		Secret:   []byte(env.JWTSecret),
		TokenTTL: env.TokenTTL,
		Location: env.Location,
	}
}

// conn keeps a nil pool as a nil interface so repositories fall back to
// config.DB.
func (h *Handler) conn() intdb.DBTX {
	if h.DB == nil {
		return nil
	}
	return h.DB
}

func (h *Handler) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{DB: h.conn()},
		Secret:    h.Secret,
		TTL:       h.TokenTTL,
		RequestID: middleware.GetRequestID(c),
	}
}

// TokenParser validates tokens for middleware.Auth.
func (h *Handler) TokenParser() middleware.TokenParser {
	return h.auth(nil).ParseToken
}

func (h *Handler) users(c *gin.Context) services.UserService {
	return services.UserService{Repo: repositories.UserRepository{DB: h.conn()}, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) stations(c *gin.Context) services.StationService {
	return services.StationService{Repo: repositories.StationRepository{DB: h.conn()}, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) routes(c *gin.Context) services.RouteService {
	return services.RouteService{
		Repo:      repositories.RouteRepository{DB: h.conn()},
		Stations:  repositories.StationRepository{DB: h.conn()},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) buses(c *gin.Context) services.BusService {
	return services.BusService{Repo: repositories.BusRepository{DB: h.conn()}, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) drivers(c *gin.Context) services.DriverService {
	return services.DriverService{Repo: repositories.DriverRepository{DB: h.conn()}, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) trips(c *gin.Context) services.TripService {
	return services.TripService{DB: h.DB, Location: h.Location, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		DB:        h.DB,
		Bookings:  repositories.BookingRepository{DB: h.conn()},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{
		Bookings:  repositories.BookingRepository{DB: h.conn()},
		Trips:     repositories.TripRepository{DB: h.conn()},
		Buses:     repositories.BusRepository{DB: h.conn()},
		Drivers:   repositories.DriverRepository{DB: h.conn()},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) dashboard() services.DashboardService {
	return services.DashboardService{
		Stats:    repositories.StatsRepository{DB: h.conn()},
		Bookings: repositories.BookingRepository{DB: h.conn()},
		Trips:    repositories.TripRepository{DB: h.conn()},
		Location: h.Location,
	}
}
