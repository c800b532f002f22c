package model

import "time"

// swagger:model Student
type Student struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	// 注册时可选携带的考试关联（自由文本，历史遗留字段，非外键）
	ExamID    *string   `gorm:"column:exam_id;size:64" json:"exam_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}
