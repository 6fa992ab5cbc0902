package repository

import (
	"go-cafe-api/internal/model"

	"gorm.io/gorm"
)

type ReportLogRepository interface {
	Create(log *model.ReportLog) error
	FindRecent(limit int) ([]model.ReportLog, error)
}

type reportLogRepo struct {
	db *gorm.DB
}

func NewReportLogRepo(db *gorm.DB) ReportLogRepository {
	return &reportLogRepo{db}
}

func (r *reportLogRepo) Create(log *model.ReportLog) error {
	return r.db.Create(log).Error
}

func (r *reportLogRepo) FindRecent(limit int) ([]model.ReportLog, error) {
	var logs []model.ReportLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
