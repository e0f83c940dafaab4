package app

import (
	"paperstore/internal/auth"
	"paperstore/internal/cart"
	"paperstore/internal/hours"
	"paperstore/internal/repo"
	"paperstore/internal/services"

	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB              *gorm.DB
	AuthService     *auth.Service
	OTPService      *auth.OTPService
	UserRepo        *repo.UserRepository
	CustomerRepo    *repo.CustomerRepository
	OTPRepo         *repo.OTPRepository
	ProductRepo     *repo.ProductRepository
	OrderRepo       *repo.OrderRepository
	PaymentRepo     *repo.PaymentRepository
	ScheduleRepo    *repo.ScheduleRepository
	ActivityRepo    *repo.ActivityRepository
	CartStore       *cart.Store
	HoursService    *services.HoursService
	OrderService    *services.OrderService
	PaymentService  *services.PaymentService
	ActivityService *services.ActivityService
	SMSSender       services.SMSSender
	OrderFeed       *services.OrderFeed
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	// Initialize repositories
	userRepo := repo.NewUserRepository(db)
	customerRepo := repo.NewCustomerRepository(db)
	otpRepo := repo.NewOTPRepository(db)
	productRepo := repo.NewProductRepository(db)
	orderRepo := repo.NewOrderRepository(db)
	paymentRepo := repo.NewPaymentRepository(db)
	scheduleRepo := repo.NewScheduleRepository(db)
	activityRepo := repo.NewActivityRepository(db)

	clock := hours.SystemClock{}

	// Initialize services
	authService := auth.NewService(userRepo)
	otpService := auth.NewOTPService(otpRepo, clock)
	hoursService := services.NewHoursService(scheduleRepo, clock)
	orderFeed := services.NewOrderFeed()
	orderService := services.NewOrderService(db, orderRepo, productRepo, orderFeed)
	paymentService := services.NewPaymentService(db, paymentRepo, orderFeed)
	activityService := services.NewActivityService(activityRepo)
	smsSender := services.NewSimulatedSMS()

	return &Services{
		DB:              db,
		AuthService:     authService,
		OTPService:      otpService,
		UserRepo:        userRepo,
		CustomerRepo:    customerRepo,
		OTPRepo:         otpRepo,
		ProductRepo:     productRepo,
		OrderRepo:       orderRepo,
		PaymentRepo:     paymentRepo,
		ScheduleRepo:    scheduleRepo,
		ActivityRepo:    activityRepo,
		CartStore:       cart.NewStore(),
		HoursService:    hoursService,
		OrderService:    orderService,
		PaymentService:  paymentService,
		ActivityService: activityService,
		SMSSender:       smsSender,
		OrderFeed:       orderFeed,
	}
}
