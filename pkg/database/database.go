package database

import (
	"fmt"
	"log"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.EvaluationFactorScore{},
		&model.TestSession{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// BackfillFactorScores inserts missing zero rows for students created before a
// factor was added to the curriculum. Idempotent, safe to run at startup.
func BackfillFactorScores(db *gorm.DB, factors []string) error {
	var students []string
	if err := db.Model(&model.User{}).Pluck("student_id", &students).Error; err != nil {
		return err
	}

	for _, studentID := range students {
		var existing []string
		if err := db.Model(&model.EvaluationFactorScore{}).
			Where("student_id = ?", studentID).
			Pluck("factor", &existing).Error; err != nil {
			return err
		}

		have := make(map[string]bool, len(existing))
		for _, f := range existing {
			have[f] = true
		}

		for _, f := range factors {
			if have[f] {
				continue
			}
			row := &model.EvaluationFactorScore{StudentID: studentID, Factor: f, Score: 0}
			if err := db.Create(row).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
