package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"blog-service/internal/api"
	"blog-service/internal/events"
	"blog-service/internal/repository"
	"blog-service/internal/service"
	"blog-service/internal/storage"
	"blog-service/internal/tracing"
	_ "blog-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("blog-service")

	shutdownTracer, err := tracing.InitTracerProvider("blog-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	blobs, err := newBlobStore()
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	var eventPublisher events.EventPublisher
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err = events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS, events disabled: %v", err)
		eventPublisher = nil
	} else {
		log.Println("Successfully connected to NATS.")
	}

	userRepo := repository.NewPostgresUserRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)

	userService := service.NewUserService(userRepo, blobs)
	postService := service.NewPostService(postRepo, userRepo, blobs, eventPublisher)

	userHandler := api.NewUserHandler(userService)
	postHandler := api.NewPostHandler(postService)

	app := fiber.New(fiber.Config{
		BodyLimit: 8 * 1024 * 1024,
	})
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "blog-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	usersRoutes := v1.Group("/users")
	usersRoutes.Post("/register", userHandler.Register)
	usersRoutes.Post("/login", userHandler.Login)
	usersRoutes.Get("/", api.AuthMiddleware(), userHandler.ListAuthors)
	usersRoutes.Get("/:id", api.AuthMiddleware(), userHandler.GetProfile)
	usersRoutes.Post("/change-avatar", api.AuthMiddleware(), userHandler.ChangeAvatar)
	usersRoutes.Patch("/edit", api.AuthMiddleware(), userHandler.EditProfile)

	postsRoutes := v1.Group("/posts")
	postsRoutes.Post("/", api.AuthMiddleware(), postHandler.Create)
	postsRoutes.Get("/", postHandler.List)
	postsRoutes.Get("/categories/:category", postHandler.ListByCategory)
	postsRoutes.Get("/users/:id", postHandler.ListByCreator)
	postsRoutes.Get("/:id", postHandler.Get)
	postsRoutes.Patch("/:id", api.AuthMiddleware(), postHandler.Edit)
	postsRoutes.Delete("/:id", api.AuthMiddleware(), postHandler.Delete)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8003"
	}

	log.Printf("Listening blog-service on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func newBlobStore() (storage.BlobStore, error) {
	if os.Getenv("BLOB_BACKEND") == "s3" {
		return storage.NewS3Store(context.Background())
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return storage.NewLocalStore(uploadDir)
}

func connectDB() *sqlx.DB {
	db, err := sqlx.Connect("pgx", databaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func databaseURL() string {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

func handleMigrations() {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
