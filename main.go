package main

import (
	"log"

	"github.com/alxtravel/travel-booking-service/config"
	"github.com/alxtravel/travel-booking-service/internal/handler"
	"github.com/alxtravel/travel-booking-service/internal/middleware"
	"github.com/alxtravel/travel-booking-service/internal/notifier"
	"github.com/alxtravel/travel-booking-service/internal/repository"
	"github.com/alxtravel/travel-booking-service/internal/service"
	"github.com/alxtravel/travel-booking-service/pkg/chapa"
	"github.com/alxtravel/travel-booking-service/pkg/database"
	"github.com/alxtravel/travel-booking-service/pkg/mailer"
	"github.com/alxtravel/travel-booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: payment.completed → confirmation-email queue
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	// Repositories
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Notification worker
	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail)
	notifier.NewNotificationConsumer(bookingRepo, smtp).Start(msgs)

	// Services
	gateway := chapa.NewClient(cfg.ChapaBaseURL, cfg.ChapaSecretKey)
	listingSvc := service.NewListingService(listingRepo)
	bookingSvc := service.NewBookingService(bookingRepo, listingRepo)
	reviewSvc := service.NewReviewService(reviewRepo, listingRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, gateway, publisher, cfg.PublicBaseURL)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "travel-booking-service"})
	})

	handler.NewListingHandler(listingSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(e)
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(e)

	log.Printf("Travel Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
