package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"gorm.io/gorm"
)

var resultSortColumns = map[string]string{
	"submitted_at": "submitted_at",
	"score":        "score",
	"test_title":   "test_title",
	"roll_number":  "roll_number",
}

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r ResultPostgreSQL) Create(ctx context.Context, result *models.ExamResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create exam result: %w", err)
	}
	return nil
}

func (r ResultPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.ExamResult, error) {
	var result models.ExamResult
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exam result %s: %w", sessionID, repositories.ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

func (r ResultPostgreSQL) Update(ctx context.Context, result *models.ExamResult) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r ResultPostgreSQL) Delete(ctx context.Context, sessionID string) error {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.ExamResult{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("exam result %s: %w", sessionID, repositories.ErrNotFound)
	}
	return nil
}

func (r ResultPostgreSQL) List(ctx context.Context, filters repositories.ResultFilters) ([]*models.ExamResult, int64, error) {
	var results []*models.ExamResult
	var total int64

	// apply filter first
	query := r.db.WithContext(ctx).Model(&models.ExamResult{})
	query = applyResultFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, resultSortColumns, "submitted_at", filters.Limit, filters.Offset)

	// payloads are only needed for single-result reads
	if err := query.Omit("payload").Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func applyResultFilters(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	if filters.RollNumber != "" {
		query = query.Where("roll_number = ?", filters.RollNumber)
	}
	if filters.TestTitle != "" {
		query = query.Where("test_title ILIKE ?", "%"+filters.TestTitle+"%")
	}
	return query
}
