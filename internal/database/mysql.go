package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"litigator/config"
	"litigator/internal/model"
)

// InitDB opens the MySQL connection and migrates the schema.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfigInstance.Database.User,
		config.AppConfigInstance.Database.Password,
		config.AppConfigInstance.Database.Host,
		config.AppConfigInstance.Database.Port,
		config.AppConfigInstance.Database.Name,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Fact{},
		&model.FactCauseLink{},
		&model.Exhibit{},
		&model.ComplaintSection{},
		&model.CauseOfAction{},
		&model.LegalElement{},
		&model.FactElementLink{},
		&model.Conversation{},
		&model.Message{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
