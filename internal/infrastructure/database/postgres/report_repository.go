package postgres

import (
	"context"
	"fmt"
	"time"

	"hamrah-bazaar/internal/domain/report"
	"hamrah-bazaar/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	rep.ID = uuid.New()
	rep.CreatedAt = time.Now()

	dbModel := &models.ReportModel{
		ID:         rep.ID,
		ListingID:  rep.ListingID,
		ReporterID: rep.ReporterID,
		Reason:     rep.Reason,
		CreatedAt:  rep.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

func (r *ReportRepository) ListAll(ctx context.Context) ([]*report.Report, error) {
	var dbModels []models.ReportModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*report.Report, len(dbModels))
	for i := range dbModels {
		reports[i] = &report.Report{
			ID:         dbModels[i].ID,
			ListingID:  dbModels[i].ListingID,
			ReporterID: dbModels[i].ReporterID,
			Reason:     dbModels[i].Reason,
			CreatedAt:  dbModels[i].CreatedAt,
		}
	}

	return reports, nil
}
