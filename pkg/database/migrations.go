package database

import (
	"fmt"

	"gorm.io/gorm"

	"proctor_guard_backend/internal/model"
)

// Migration 一次增量 schema 变更。Run 必须只增不破坏，且重复执行安全。
type Migration struct {
	Version int
	Name    string
	Run     func(db *gorm.DB) error
}

// migrations 按版本升序排列。已应用的版本记录在 schema_migrations 表里，
// 启动时跳过；新步骤只能追加在末尾，不允许改写历史版本。
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_core_tables",
		Run: func(db *gorm.DB) error {
			for _, m := range []interface{}{
				&model.Student{},
				&model.Exam{},
				&model.Alert{},
				&model.Submission{},
				&model.ViolationScreenshot{},
			} {
				if db.Migrator().HasTable(m) {
					continue
				}
				if err := db.Migrator().CreateTable(m); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		// 早期部署的 exams 表没有 code 列
		Version: 2,
		Name:    "add_exam_code",
		Run: func(db *gorm.DB) error {
			if db.Migrator().HasColumn(&model.Exam{}, "code") {
				return nil
			}
			return db.Migrator().AddColumn(&model.Exam{}, "code")
		},
	},
	{
		// 早期部署的 submissions 表没有 flagged 列
		Version: 3,
		Name:    "add_submission_flagged",
		Run: func(db *gorm.DB) error {
			if db.Migrator().HasColumn(&model.Submission{}, "flagged") {
				return nil
			}
			return db.Migrator().AddColumn(&model.Submission{}, "flagged")
		},
	},
}

// RunMigrations 应用所有尚未执行过的迁移版本，可以重复调用。
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.SchemaMigration{}); err != nil {
		return fmt.Errorf("prepare schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&model.SchemaMigration{}).Where("version = ?", m.Version).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&model.SchemaMigration{Version: m.Version, Name: m.Name}).Error
		}); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}
