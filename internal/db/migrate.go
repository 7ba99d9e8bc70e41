package db

import (
	"github.com/Manulynx/kitaluro/config"
	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"github.com/Manulynx/kitaluro/pkg/slug"
	"github.com/Manulynx/kitaluro/pkg/util"
)

// Migrate runs database migrations.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Subcategory{},
		&model.Brand{},
		&model.Supplier{},
		&model.Status{},
		&model.Product{},
		&model.ProductMedia{},
		&model.ProductImage{},
		&model.ProductVideo{},
		&model.Rating{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed inserts reference rows and the first admin account when missing.
func Seed(adminCfg *config.AdminConfig) error {
	logger.Info("Seeding initial data...")

	if err := seedStatuses(); err != nil {
		logger.Error("Failed to seed statuses", err)
		return err
	}

	if err := seedAdminUser(adminCfg); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedStatuses() error {
	var count int64
	if err := DB.Model(&model.Status{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	statuses := []model.Status{
		{Name: "Nuevo", Description: "Producto nuevo de fábrica"},
		{Name: "Reacondicionado", Description: "Producto restaurado y verificado"},
		{Name: "Liquidación", Description: "Últimas unidades"},
	}
	for i := range statuses {
		statuses[i].Slug = slug.Make(statuses[i].Name)
	}

	if err := DB.Create(&statuses).Error; err != nil {
		return err
	}

	logger.Info("Default statuses seeded", map[string]interface{}{
		"count": len(statuses),
	})
	return nil
}

func seedAdminUser(adminCfg *config.AdminConfig) error {
	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if adminCfg == nil || adminCfg.Password == "" {
		logger.Warn("No users exist and ADMIN_PASSWORD is unset; skipping admin seed", nil)
		return nil
	}

	hash, err := util.HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        adminCfg.Email,
		PasswordHash: hash,
		Name:         adminCfg.Name,
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user seeded", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}
