package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	config "github.com/tutorly/api/configs"
	"github.com/tutorly/api/database"
	"github.com/tutorly/api/handlers"
	"github.com/tutorly/api/jobs"
	"github.com/tutorly/api/routes"
	"github.com/tutorly/api/services"
	"github.com/tutorly/api/websocket"
)

func main() {
	db, err := database.Connect(config.Config("DATABASE_URL"))
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	log.Println("✅ Database connected and migrated")

	ledger := services.NewLedgerService(db)
	bids := services.NewBidService(db)
	acceptance := services.NewAcceptanceService(db)
	escrow := services.NewEscrowService(db, ledger)
	requests := services.NewRequestService(db)
	reviews := services.NewReviewService(db)

	c := cron.New()
	expiry := jobs.NewRequestExpiryJob(db)
	c.AddFunc("0 * * * *", expiry.Run)
	go c.Start()
	log.Println("✅ Cron job for request expiry scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Tutorly",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Tutorly API is running!",
		})
	})

	routes.UserRoutes(app, handlers.NewUserHandler(db, ledger))
	routes.RequestRoutes(app, handlers.NewRequestHandler(db, requests))
	routes.BidRoutes(app, handlers.NewBidHandler(db, bids, acceptance))
	routes.PaymentRoutes(app, handlers.NewPaymentHandler(db, escrow))
	routes.ReviewRoutes(app, handlers.NewReviewHandler(db, reviews))
	routes.WebsocketRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")

	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
