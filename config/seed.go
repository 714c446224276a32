package config

import (
	"fmt"

	"carwash-backend/logger"
	"carwash-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureAdmin creates the admin account when the users table is empty.
func EnsureAdmin(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := models.User{Username: "admin", Password: password, FullName: "Quản trị viên", Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logger.Log.Info("admin user created", zap.String("username", admin.Username))
	return nil
}

// Sample rows are loaded with literal statements; nothing here takes user input.
var demoData = []string{
	`INSERT INTO car_categories (name, description, service_multiplier, created_at, updated_at) VALUES
		('Xe 4 chỗ', 'Sedan, hatchback', 1.0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Xe 7 chỗ', 'SUV, MPV', 1.3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Bán tải', 'Pickup', 1.5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Xe 16 chỗ', 'Minibus', 2.0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO services (name, description, base_price, duration, category, created_at, updated_at) VALUES
		('Rửa xe cơ bản', 'Rửa thân, hút bụi', 100000, 30, 'Rửa xe', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Rửa xe cao cấp', 'Rửa, xịt gầm, dưỡng lốp', 180000, 60, 'Rửa xe', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Vệ sinh nội thất', 'Giặt ghế, khử mùi', 450000, 120, 'Chăm sóc', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Đánh bóng sơn', 'Đánh bóng 3 bước', 800000, 180, 'Chăm sóc', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Thay dầu', 'Thay dầu động cơ', 350000, 30, 'Bảo dưỡng', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO customers (name, phone, email, discount_rate, notes, total_visits, total_spent, last_visit, created_at, updated_at) VALUES
		('Nguyễn Văn An', '0901234567', 'an@example.com', 5, 'Khách quen', 0, 0, '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Trần Thị Bình', '0912345678', '', 0, '', 0, 0, '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Lê Hoàng Cường', '0987654321', '', 10, 'Khách VIP', 0, 0, '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO product_categories (name, description, created_at, updated_at) VALUES
		('Hóa chất', 'Dung dịch rửa, dưỡng', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Dầu nhớt', 'Dầu động cơ', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Thiết bị', 'Máy móc, dụng cụ', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO suppliers (name, phone, email, address, notes, created_at, updated_at) VALUES
		('Công ty Hóa chất Sài Gòn', '02838234567', 'sales@hcsg.vn', 'Quận 7, TP.HCM', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO batches (batch_code, supplier_id, import_date, notes, created_at, updated_at) VALUES
		('LO-2024-001', 1, '2024-01-15', 'Lô đầu năm', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO inventory (name, category_id, type, quantity, unit, unit_price, reorder_point, batch_id, import_date, invoice_image, created_at, updated_at) VALUES
		('Nước rửa xe bọt tuyết', 1, 'consumable', 20, 'lít', 85000, 5, 1, '2024-01-15', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Dầu Castrol 5W-30', 2, 'consumable', 3, 'can', 320000, 5, 1, '2024-01-15', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Máy hút bụi', 3, 'equipment', 2, 'cái', 4500000, 0, NULL, '2024-01-15', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO promotions (name, description, discount_type, discount_value, min_purchase_amount, max_discount_amount, start_date, end_date, is_active, usage_limit, used_count, created_at, updated_at) VALUES
		('Khai trương', 'Giảm 10% cho mọi hóa đơn', 'percentage', 10, 200000, 100000, '2024-01-01', '2030-12-31', true, NULL, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO vouchers (code, promotion_id, discount_type, discount_value, min_purchase_amount, max_discount_amount, valid_from, valid_until, is_used, created_at, updated_at) VALUES
		('WELCOME50', 1, 'fixed', 50000, 100000, NULL, '2024-01-01', '2030-12-31', false, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO customer_groups (name, description, discount_rate, created_at, updated_at) VALUES
		('VIP', 'Khách hàng thân thiết', 10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO customer_group_members (group_id, customer_id, created_at, updated_at) VALUES
		(1, 3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,

	`INSERT INTO employees (name, phone, position, card_id, salary, hire_date, status, created_at, updated_at) VALUES
		('Phạm Minh Đức', '0933111222', 'Thợ rửa xe', 'CARD001', 7000000, '2023-06-01', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
		('Võ Thị Em', '0933444555', 'Thu ngân', 'CARD002', 8000000, '2023-08-15', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
}

// SeedDemoData loads sample rows when the customers table is empty.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range demoData {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	logger.Log.Info("demo data loaded", zap.Int("statements", len(demoData)))
	return nil
}
