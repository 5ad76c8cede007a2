package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/matchpoint-gg/matchpoint/internal/api/http"
	auth "github.com/matchpoint-gg/matchpoint/internal/auth/middleware"
	"github.com/matchpoint-gg/matchpoint/internal/avatar"
	"github.com/matchpoint-gg/matchpoint/internal/config"
	"github.com/matchpoint-gg/matchpoint/internal/db"
	"github.com/matchpoint-gg/matchpoint/internal/match"
	"github.com/matchpoint-gg/matchpoint/internal/storage"
	"github.com/matchpoint-gg/matchpoint/internal/user"
	"github.com/matchpoint-gg/matchpoint/internal/ws"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	users := user.NewSQLStore(dbh, cfg.DBDriver)
	matches := match.NewSQLStore(dbh, cfg.DBDriver)

	// --- Blob store (avatars) ---
	if cfg.BlobDriver != "fs" {
		log.Fatalf("unsupported blob driver: %s", cfg.BlobDriver)
	}
	bs, err := storage.NewFSStore(cfg.AvatarDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Auth / live-update hub / pipeline ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	hub := ws.NewHub()
	pipeline := avatar.NewPipeline(bs, cfg.AvatarMaxBytes, users, hub)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, users))

	// Live-update socket: mounted outside the request timeout, it lives as
	// long as the client does.
	r.Get("/ws", ws.Handler(hub, authSvc, users))

	r.Route("/api", func(ar chi.Router) {
		ar.Use(middleware.Timeout(30 * time.Second))

		ar.Get("/users", api.ListUsersHandler(users))
		ar.Get("/users/{id}", api.GetUserHandler(users))
		ar.Patch("/users/{id}/live", api.SetLiveHandler(users))
		ar.Get("/users/{id}/stats", api.UserStatsHandler(matches))
		ar.Get("/users/{id}/matches", api.UserMatchesHandler(matches))

		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))
			pr.Post("/me/avatar", api.UploadAvatarHandler(pipeline))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	// Avatar objects are addressed root-relative (catch-all keeps the
	// returned avatarUrl working without a prefix).
	api.MountAssets(r, bs)

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
