package repository

import (
	"proctor_guard_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository struct {
	DB *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{DB: db}
}

func (r *AlertRepository) Create(alert *model.Alert) error {
	return r.DB.Omit(clause.Associations).Create(alert).Error
}

// CreateWithScreenshot 在同一事务里写入告警和截图。
// 截图的 alert_id 取自刚分配的告警主键；第二条写入失败时整体回滚，
// 不会留下没有截图的告警或者指向不存在告警的截图。
func (r *AlertRepository) CreateWithScreenshot(alert *model.Alert, shot *model.ViolationScreenshot) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(alert).Error; err != nil {
			return err
		}

		if shot == nil {
			return nil
		}

		shot.AlertID = alert.ID
		return tx.Omit(clause.Associations).Create(shot).Error
	})
}

func (r *AlertRepository) FindAll() ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.DB.Order("timestamp DESC, id DESC").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) FindByStudentID(studentID uint) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.DB.Where("student_id = ?", studentID).Order("timestamp DESC, id DESC").Find(&alerts).Error
	return alerts, err
}

// ViolationsWithEvidence 以告警为主表的联查：左连截图（允许无截图的告警），
// 内连学生取展示名，按告警时间倒序。
func (r *AlertRepository) ViolationsWithEvidence() ([]model.ViolationEvidence, error) {
	var rows []model.ViolationEvidence
	err := r.DB.Table("alerts").
		Select(`alerts.id AS alert_id,
			alerts.student_id,
			alerts.exam_id,
			students.name AS student_name,
			alerts.reason,
			alerts.severity,
			alerts.timestamp,
			COALESCE(violation_screenshots.image_data, '') AS image_data,
			COALESCE(violation_screenshots.violation_type, '') AS violation_type`).
		Joins("JOIN students ON students.id = alerts.student_id").
		Joins("LEFT JOIN violation_screenshots ON violation_screenshots.alert_id = alerts.id").
		Order("alerts.timestamp DESC, alerts.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AlertRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Alert{}).Count(&count).Error
	return count, err
}

func (r *AlertRepository) CountBySeverity(severity string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Alert{}).Where("severity = ?", severity).Count(&count).Error
	return count, err
}

func (r *AlertRepository) CountScreenshots() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ViolationScreenshot{}).Count(&count).Error
	return count, err
}
