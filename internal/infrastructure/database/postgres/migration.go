// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/socdefainder-oss/pronto-backend/internal/domain/coupon"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/product"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Staff accounts
		&user.User{},

		// Menu
		&product.Category{},
		&product.Product{},

		// Coupons
		&coupon.Coupon{},

		// Orders
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&order.OrderStatusHistory{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Staff indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Menu indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_available ON products(category_id, is_available)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Coupon indexes
		"CREATE INDEX IF NOT EXISTS idx_coupons_code_active ON coupons(code, is_active)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_phone ON orders(customer_phone)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Payment indexes
		"CREATE INDEX IF NOT EXISTS idx_payments_order_id ON payments(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_provider_id ON payments(payment_provider_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedMenu(); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	if err := m.seedCoupons(); err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}

	if err := m.seedStaff(); err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedMenu creates the default menu sections and a few items
func (m *Migration) seedMenu() error {
	log.Println("🍔 Seeding menu...")

	categories := []product.Category{
		{Name: "Burgers", Slug: "burgers", Description: "House burgers on brioche buns", SortOrder: 1, IsActive: true},
		{Name: "Pizzas", Slug: "pizzas", Description: "Stone-baked pizzas", SortOrder: 2, IsActive: true},
		{Name: "Sides", Slug: "sides", Description: "Fries and extras", SortOrder: 3, IsActive: true},
		{Name: "Drinks", Slug: "drinks", Description: "Sodas and juices", SortOrder: 4, IsActive: true},
	}

	categoryIDs := map[string]uint{}
	for _, category := range categories {
		var existing product.Category
		result := m.db.Where("slug = ?", category.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			categoryIDs[category.Slug] = category.ID
			log.Printf("✅ Created category: %s", category.Name)
		} else {
			categoryIDs[category.Slug] = existing.ID
		}
	}

	items := []product.Product{
		{Name: "Classic Burger", Slug: "classic-burger", Description: "Beef patty, cheddar, lettuce, tomato", Price: 2990, CategoryID: categoryIDs["burgers"], IsAvailable: true, SortOrder: 1},
		{Name: "Double Bacon", Slug: "double-bacon", Description: "Two patties, bacon, barbecue sauce", Price: 3890, CategoryID: categoryIDs["burgers"], IsAvailable: true, SortOrder: 2},
		{Name: "Margherita", Slug: "margherita", Description: "Tomato, mozzarella, basil", Price: 4490, CategoryID: categoryIDs["pizzas"], IsAvailable: true, SortOrder: 1},
		{Name: "Fries", Slug: "fries", Description: "Crispy fries with house seasoning", Price: 1290, CategoryID: categoryIDs["sides"], IsAvailable: true, SortOrder: 1},
		{Name: "Soda Can", Slug: "soda-can", Description: "350ml can", Price: 690, CategoryID: categoryIDs["drinks"], IsAvailable: true, SortOrder: 1},
	}

	for _, item := range items {
		var existing product.Product
		result := m.db.Where("slug = ?", item.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&item).Error; err != nil {
				return err
			}
			log.Printf("✅ Created menu item: %s", item.Name)
		}
	}

	return nil
}

// seedCoupons creates a couple of starter coupons
func (m *Migration) seedCoupons() error {
	log.Println("🏷️ Seeding coupons...")

	validUntil := time.Now().AddDate(1, 0, 0)
	coupons := []coupon.Coupon{
		{
			Code:           "WELCOME10",
			Description:    "10% off your first order",
			DiscountType:   coupon.DiscountTypePercentage,
			DiscountValue:  10,
			MinOrderAmount: 2000,
			IsActive:       true,
			ValidUntil:     &validUntil,
		},
		{
			Code:          "FRETE5",
			Description:   "R$5 off any order",
			DiscountType:  coupon.DiscountTypeFixedAmount,
			DiscountValue: 500,
			IsActive:      true,
		},
	}

	for _, c := range coupons {
		var existing coupon.Coupon
		result := m.db.Where("code = ?", c.Code).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&c).Error; err != nil {
				return err
			}
			log.Printf("✅ Created coupon: %s", c.Code)
		}
	}

	return nil
}

// seedStaff creates the default admin account
func (m *Migration) seedStaff() error {
	log.Println("👤 Seeding staff accounts...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@pronto.local").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		admin := user.User{
			Email:    "admin@pronto.local",
			Password: string(hashedPassword),
			Name:     "Administrator",
			Role:     user.RoleAdmin,
			IsActive: true,
		}
		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Println("✅ Created admin user: admin@pronto.local")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}

	return nil
}
