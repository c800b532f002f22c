package model

import "time"

// swagger:model Exam
type Exam struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
	// 人类可读的考试码（如 EXAM-001），接口上与数字 id 可以互换使用
	Code           string    `gorm:"size:64;index" json:"code"`
	Duration       int       `gorm:"default:0" json:"duration"` // 分钟
	TotalQuestions int       `gorm:"default:0" json:"total_questions"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Exam) TableName() string {
	return "exams"
}
