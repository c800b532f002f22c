package model

import "time"

// SchemaMigration 已应用的数据库迁移版本记录
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey" json:"version"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	AppliedAt time.Time `gorm:"autoCreateTime" json:"applied_at"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
