package db

import (
	"fmt"
	"os"

	"paperstore/pkg/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running GORM AutoMigrate...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Warn().Err(err).Msg("Could not create uuid-ossp extension")
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Warn().Err(err).Msg("Failed to create some custom indexes")
	}

	log.Info().Msg("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any custom indexes that GORM might not handle
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// Full text search index for products
		`CREATE INDEX IF NOT EXISTS idx_products_search ON products USING gin(to_tsvector('simple', coalesce(name, '') || ' ' || coalesce(description, '') || ' ' || coalesce(sku, '')))`,

		// One pending order lookup per customer is the hot path of the console
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_status ON orders (customer_id, status)`,

		// Latest unconsumed code per phone drives the OTP cooldown check
		`CREATE INDEX IF NOT EXISTS idx_otp_codes_phone_created ON otp_codes (phone, created_at DESC)`,

		// A single active schedule row at any time
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_working_hours_single_active ON working_hours (is_active) WHERE is_active = true`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Warn().Err(err).Str("index", idx).Msg("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData creates initial system data
func SeedInitialData(db *gorm.DB) error {
	log.Info().Msg("Seeding initial data...")

	if err := seedSuperAdmin(db); err != nil {
		return err
	}
	if err := seedWorkingHours(db); err != nil {
		return err
	}
	if err := seedProducts(db); err != nil {
		return err
	}

	return nil
}

func seedSuperAdmin(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	adminUser := models.User{
		Email:    getEnvOrDefault("ADMIN_EMAIL", "admin@paperstore.local"),
		Password: string(hash),
		Name:     "Store Administrator",
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("email", adminUser.Email).Msg("Admin user created successfully")
	return nil
}

func seedWorkingHours(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.WorkingHours{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check working hours: %w", err)
	}
	if count > 0 {
		return nil
	}

	// Default window: 08:00 to 18:00, store open
	wh := models.WorkingHours{
		StartHour:   8,
		StartMinute: 0,
		EndHour:     18,
		EndMinute:   0,
		IsActive:    true,
		Description: "Default working hours",
	}
	if err := db.Create(&wh).Error; err != nil {
		return fmt.Errorf("failed to create default working hours: %w", err)
	}

	log.Info().Msg("Default working hours created")
	return nil
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "A4 Paper 80gsm White", SKU: "CASH-A4-80", Tier: models.TierCash, Price: 25000, StockQuantity: 150, SortOrder: 1, IsActive: true},
		{Name: "A3 Paper 80gsm White", SKU: "CASH-A3-80", Tier: models.TierCash, Price: 45000, StockQuantity: 80, SortOrder: 2, IsActive: true},
		{Name: "A4 Colored Paper 120gsm Blue", SKU: "CASH-A4-120B", Tier: models.TierCash, Price: 35000, StockQuantity: 45, SortOrder: 3, IsActive: true},
		{Name: "A4 Glossy Paper 150gsm White", SKU: "CASH-A4-150G", Tier: models.TierCash, Price: 55000, StockQuantity: 60, SortOrder: 4, IsActive: true},
		{Name: "A4 Paper 80gsm White (Credit)", SKU: "CRED-A4-80", Tier: models.TierCredit, Price: 28000, StockQuantity: 120, SortOrder: 1, IsActive: true},
		{Name: "A3 Paper 80gsm White (Credit)", SKU: "CRED-A3-80", Tier: models.TierCredit, Price: 50000, StockQuantity: 50, SortOrder: 2, IsActive: true},
		{Name: "A4 Colored Paper 120gsm Red (Credit)", SKU: "CRED-A4-120R", Tier: models.TierCredit, Price: 38000, StockQuantity: 30, SortOrder: 3, IsActive: true},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].SKU, err)
		}
	}

	log.Info().Int("count", len(products)).Msg("Default catalog seeded")
	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := SeedInitialData(db); err != nil {
		return fmt.Errorf("initial data seeding failed: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
