package config

import (
	"testing"
	"time"

	"carwash-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memoryConfig() *Config {
	return &Config{
		DBDriver: "sqlite",
		DBURL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.TwilioEnabled())
}

func TestLoadRejects(t *testing.T) {
	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		assert.Error(t, err)
	})
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := ConnectDB(memoryConfig())
	require.NoError(t, err)
	require.NoError(t, Migrate(db, false))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSeedDemoData(t *testing.T) {
	db := openMigrated(t)

	require.NoError(t, SeedDemoData(db))
	require.NoError(t, SeedDemoData(db), "second run is a no-op")

	var customers int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	assert.Equal(t, int64(3), customers)

	var promo models.Promotion
	require.NoError(t, db.First(&promo).Error)
	assert.Equal(t, "percentage", promo.DiscountType)
	assert.True(t, promo.IsActive)
	assert.NotEmpty(t, promo.Status)

	var voucher models.Voucher
	require.NoError(t, db.Where("code = ?", "WELCOME50").First(&voucher).Error)
	assert.False(t, voucher.IsUsed)
}

func TestEnsureAdmin(t *testing.T) {
	db := openMigrated(t)

	require.NoError(t, EnsureAdmin(db, "secret1"))
	require.NoError(t, EnsureAdmin(db, "secret2"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.NotEqual(t, "secret1", users[0].Password)
}

func TestMigrateReset(t *testing.T) {
	db := openMigrated(t)
	require.NoError(t, SeedDemoData(db))

	require.NoError(t, Migrate(db, true))

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}
