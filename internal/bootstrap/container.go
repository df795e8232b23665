package bootstrap

import (
	"context"
	"log"

	"fitmarket-be/internal/config"
	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/controller"
	"fitmarket-be/internal/handler"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/pkg/mailer"
	"fitmarket-be/internal/repository/memory"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/internal/scheduler"
	"fitmarket-be/internal/service"
	"fitmarket-be/internal/websocket"

	pktNats "fitmarket-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PaymentController  controller.IPaymentController
	CheckoutController controller.ICheckoutController
	BookingController  controller.IBookingController
	WalletController   controller.IWalletController
	ReportController   controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	JobRunner       *scheduler.Runner

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Settings & Scheduler
	settingsCache := memory.NewSettingsCache(
		uowFactory.NewUnitOfWork(context.Background()).SettingRepository(),
		cfg.Settlement,
	)

	jobs := scheduler.NewStoreScheduler(uowFactory, sysLogger)
	runner := scheduler.NewRunner(uowFactory, cfg.Scheduler, sysLogger)

	// 4. Services
	walletLedger := service.NewWalletLedger(sysLogger)
	walletService := service.NewWalletService(uowFactory)

	settlementService := service.NewSettlementService(
		uowFactory,
		walletLedger,
		jobs,
		settingsCache,
		natsPub,
		emailService,
		cfg.Midtrans,
		sysLogger,
	)

	checkoutService := service.NewCheckoutService(
		uowFactory,
		jobs,
		settingsCache,
		cfg.Midtrans,
		cfg.App,
		sysLogger,
	)

	bookingService := service.NewBookingService(uowFactory, pubSub, natsPub, sysLogger)
	reportService := service.NewReportService(uowFactory, walletLedger, jobs, natsPub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, uowFactory, jobs, sysLogger)

	// Every job group the settlement flow plants must have a handler
	// registered before the runner starts.
	runner.RegisterHandler(constant.JobGroupProfitRelease, settlementService.HandleProfitRelease)
	runner.RegisterHandler(constant.JobGroupAutoCancelOrder, settlementService.HandleAutoCancel)
	runner.RegisterHandler(constant.JobGroupFeedbackReminder, settlementService.HandleFeedbackReminder)
	runner.RegisterHandler(constant.JobGroupEntitlementExpiry, settlementService.HandleEntitlementExpiry)
	runner.RegisterHandler(constant.JobGroupTrainerRelease, settlementService.HandleTrainerRelease)
	runner.RegisterHandler(constant.JobGroupSubscriptionExpiry, settlementService.HandleSubscriptionExpiry)

	// 5. Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		PaymentController:   controller.NewPaymentController(settlementService),
		CheckoutController:  controller.NewCheckoutController(checkoutService),
		BookingController:   controller.NewBookingController(bookingService),
		WalletController:    controller.NewWalletController(walletService),
		ReportController:    controller.NewReportController(reportService),

		ConsumerService: consumerService,
		JobRunner:       runner,
	}
}
