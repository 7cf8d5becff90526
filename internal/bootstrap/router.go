package bootstrap

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/MuseLink-app/muselink-backend/internal/api/http"
	"github.com/MuseLink-app/muselink-backend/internal/api/http/middleware"
	"github.com/MuseLink-app/muselink-backend/internal/applications"
	"github.com/MuseLink-app/muselink-backend/internal/auth"
	authhttp "github.com/MuseLink-app/muselink-backend/internal/auth/http"
	authmw "github.com/MuseLink-app/muselink-backend/internal/auth/middleware"
	"github.com/MuseLink-app/muselink-backend/internal/cache"
	"github.com/MuseLink-app/muselink-backend/internal/connectivity"
	"github.com/MuseLink-app/muselink-backend/internal/matches"
	"github.com/MuseLink-app/muselink-backend/internal/media"
	"github.com/MuseLink-app/muselink-backend/internal/messages"
	"github.com/MuseLink-app/muselink-backend/internal/payments"
	"github.com/MuseLink-app/muselink-backend/internal/profiles"
	"github.com/MuseLink-app/muselink-backend/internal/projects"
	"github.com/MuseLink-app/muselink-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	AuthClient     *fbauth.Client
	Monitor        *connectivity.Monitor
	Media          *media.Service
	RateLimitRPS   float64
	RateLimitBurst int
	CacheTTL       time.Duration
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Monitor)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))

	userRepo := users.NewRepo(dep.DB)
	profileRepo := profiles.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	applicationRepo := applications.NewRepo(dep.DB)
	matchRepo := matches.NewRepo(dep.DB)
	messageRepo := messages.NewRepo(dep.DB)
	paymentRepo := payments.NewRepo(dep.DB)

	var store *cache.Store
	if dep.Redis != nil {
		store = cache.NewStore(dep.Redis, dep.CacheTTL)
	}

	authHandler := authhttp.NewHandler(dep.AuthClient, userRepo, profileRepo)
	authHandler.RegisterPublic(api)

	authed := api.Group("")
	authed.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	authed.Use(auth.WithUser(userRepo))

	authHandler.RegisterAuthed(authed)
	profiles.Register(authed, profileRepo, store)

	projectsGroup := authed.Group("/projects")
	projects.Register(projectsGroup, projectRepo, store)

	applications.Register(authed, applicationRepo)

	matchesGroup := authed.Group("/matches")
	matches.Register(matchesGroup, matchRepo)
	messages.RegisterMatchSubroutes(matchesGroup, messageRepo)

	payments.Register(authed, paymentRepo)

	if dep.Media != nil {
		media.Register(authed, dep.Media)
	}

	return r
}
