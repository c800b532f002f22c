package model

import "time"

// ViolationEvidence 告警与取证截图的联查行。
// 没有截图的告警 image_data / violation_type 为空字符串。
type ViolationEvidence struct {
	AlertID       uint      `json:"alert_id"`
	StudentID     uint      `json:"student_id"`
	ExamID        uint      `json:"exam_id"`
	StudentName   string    `json:"student_name"`
	Reason        string    `json:"reason"`
	Severity      string    `json:"severity"`
	Timestamp     time.Time `json:"timestamp"`
	ImageData     string    `json:"image_data"`
	ViolationType string    `json:"violation_type"`
}

// DashboardStats 监考总览计数
type DashboardStats struct {
	Students           int64 `json:"students"`
	Exams              int64 `json:"exams"`
	Alerts             int64 `json:"alerts"`
	CriticalAlerts     int64 `json:"critical_alerts"`
	WarningAlerts      int64 `json:"warning_alerts"`
	Screenshots        int64 `json:"screenshots"`
	Submissions        int64 `json:"submissions"`
	FlaggedSubmissions int64 `json:"flagged_submissions"`
}

// LiveStudent 近期仍在上报帧的考生
type LiveStudent struct {
	StudentID uint      `json:"student_id"`
	ExamID    uint      `json:"exam_id"`
	LastSeen  time.Time `json:"last_seen"`
}
