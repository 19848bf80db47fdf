package server

import (
	"time"

	"github.com/crazyLixxx/yatube-backend/internal/auth"
	"github.com/crazyLixxx/yatube-backend/internal/config"
	"github.com/crazyLixxx/yatube-backend/internal/feedcache"
	"github.com/crazyLixxx/yatube-backend/internal/follow"
	"github.com/crazyLixxx/yatube-backend/internal/posts"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Cache *feedcache.Cache
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(auth.Identity(cfg.JWTSecret))

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Cache: feedcache.New(redisClient, "index:", time.Duration(cfg.CacheTTL)*time.Second),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	posts.RegisterRoutes(s.App, posts.NewService(s.DB), follow.NewService(s.DB), s.Cache, posts.Options{
		PageSize: s.Cfg.PageSize,
		LoginURL: s.Cfg.LoginURL,
	})
}
