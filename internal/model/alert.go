package model

import "time"

// 告警严重级别，只允许这两档
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// ValidSeverity 校验严重级别取值
func ValidSeverity(s string) bool {
	return s == SeverityWarning || s == SeverityCritical
}

// Alert 一条违规告警。只增不改：创建后永不更新、永不删除。
// swagger:model Alert
type Alert struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	ExamID    uint      `gorm:"not null;index" json:"exam_id"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Severity  string    `gorm:"size:16;not null" json:"severity"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`

	Student Student `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Exam    Exam    `gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Alert) TableName() string {
	return "alerts"
}
