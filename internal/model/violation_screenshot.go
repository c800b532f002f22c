package model

import "time"

// ViolationScreenshot 告警对应的取证截图。与其告警在同一事务内写入；
// alert_id 上的唯一索引保证每条告警至多一张截图。
// swagger:model ViolationScreenshot
type ViolationScreenshot struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AlertID   uint   `gorm:"not null;uniqueIndex" json:"alert_id"`
	StudentID uint   `gorm:"not null;index" json:"student_id"`
	ExamID    uint   `gorm:"not null;index" json:"exam_id"`
	// base64 编码的 JPEG
	ImageData     string    `gorm:"type:text;not null" json:"image_data"`
	ViolationType string    `gorm:"size:64;not null" json:"violation_type"`
	Timestamp     time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`

	Alert   Alert   `gorm:"foreignKey:AlertID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Student Student `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Exam    Exam    `gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ViolationScreenshot) TableName() string {
	return "violation_screenshots"
}
