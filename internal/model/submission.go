package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission 考试提交记录。同一 (student, exam) 允许多行，后来的行
// 不覆盖先前的行。
// swagger:model Submission
type Submission struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID uint `gorm:"not null;index" json:"student_id"`
	ExamID    uint `gorm:"not null;index" json:"exam_id"`
	// 答案映射，按 key 排序序列化成 JSON 存储
	Answers     datatypes.JSONMap `gorm:"type:json" json:"answers"`
	Score       *float64          `json:"score"`
	Flagged     bool              `gorm:"default:false" json:"flagged"`
	SubmittedAt time.Time         `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`

	Student Student `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Exam    Exam    `gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}
