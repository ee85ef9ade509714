package repositories

import (
	"context"
	"errors"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"gorm.io/gorm"
)

// ResultFilters narrows a result history listing
type ResultFilters struct {
	RollNumber string `json:"roll_number" form:"roll_number"`
	TestTitle  string `json:"test_title" form:"test_title"`
	Limit      int    `json:"limit" form:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int    `json:"offset" form:"offset" validate:"omitempty,min=0"`
	SortBy     string `json:"sort_by" form:"sort_by"`       // "submitted_at", "score", "test_title", "roll_number"
	SortOrder  string `json:"sort_order" form:"sort_order"` // "asc", "desc"
}

// ResultRepository stores submitted exam results
type ResultRepository interface {
	Create(ctx context.Context, result *models.ExamResult) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.ExamResult, error)
	Update(ctx context.Context, result *models.ExamResult) error
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context, filters ResultFilters) ([]*models.ExamResult, int64, error)
}

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("record not found")

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
