package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resume-tailor/internal/adapter/github"
	httpadapter "resume-tailor/internal/adapter/http"
	"resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/adapter/identity"
	repo "resume-tailor/internal/adapter/repository"
	"resume-tailor/internal/config"
	"resume-tailor/internal/infrastructure/migration"
	"resume-tailor/internal/usecase"
	"resume-tailor/pkg/ai"
	infra "resume-tailor/pkg/infrastructure"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := checkConfig(cfg); err != nil {
		return err
	}
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := migration.RunMigrations(ctx, pool); err != nil {
		return err
	}

	sessions := repo.NewSessionsRepo(pool)
	profiles := repo.NewProfilesRepo(pool)
	projects := repo.NewProjectsRepo(pool)
	resumes := repo.NewResumesRepo(pool)

	idp := identity.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.ServiceKey)

	gemini, err := ai.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbeddingModel)
	if err != nil {
		return err
	}
	model := ai.NewClient(gemini)

	var throttle usecase.Throttle
	if cfg.RedisAddr != "" {
		rt := infra.NewRedisThrottle(cfg.RedisAddr)
		defer rt.Close()
		if err := rt.Ping(ctx); err != nil {
			log.Warn("redis unavailable, refresh throttling falls back to the profile", "error", err)
		} else {
			throttle = rt
		}
	}

	storage, err := infra.NewStorage(ctx, cfg.Storage.Type, cfg.Storage.Path, infra.S3Options{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		return err
	}
	var archive usecase.Archive
	if storage != nil {
		archive = storage
	}

	ghClient := github.New(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret)
	log.Info("github client", "client", ghClient.String())

	h := httpadapter.NewHandler(httpadapter.Services{
		Accounts: usecase.NewAccounts(idp),
		GitHub:   usecase.NewGitHubProjects(ghClient, profiles, projects, model, throttle, log),
		Resumes:  usecase.NewResumes(resumes),
		Tailor: usecase.NewTailor(usecase.TailorDeps{
			Projects: projects,
			Resumes:  resumes,
			Embedder: model,
			Points:   model.NewPointsFormatter(),
			Latex:    model.NewLatexFormatter(),
			Renderer: infra.NewLatexRenderer(cfg.LatexCompilerURL),
			Archive:  archive,
			Log:      log,
		}),
		MaxUpload: int64(cfg.MaxUploadBytes),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.MaxUploadBytes + 64<<10,
		DisableStartupMessage: true,
	})
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	disp := dispatch.New(
		dispatch.NewSessionValidator(idp, sessions, cfg.Supabase.JWTSecret),
		dispatch.WithLimiter(dispatch.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)),
		dispatch.WithMetrics(dispatch.NewMetrics(reg)),
		dispatch.WithLogger(log),
	)
	httpadapter.Register(app, disp, h)

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "port", cfg.Port)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

// checkConfig rejects settings without which no request could succeed.
func checkConfig(cfg config.Config) error {
	switch {
	case cfg.DatabaseURL == "":
		return errors.New("DATABASE_URL is not set")
	case cfg.Supabase.URL == "":
		return errors.New("SUPABASE_URL is not set")
	case cfg.Supabase.JWTSecret == "":
		return errors.New("SUPABASE_JWT_SECRET is not set, session tokens cannot be verified")
	}
	return nil
}
