package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/Rtx09x/Meow-Mocks/internal/cache"
	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"github.com/Rtx09x/Meow-Mocks/internal/scoring"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/Rtx09x/Meow-Mocks/internal/validator"
)

const maxNoteLength = 5000

type resultService struct {
	repo      repositories.ResultRepository
	cache     cache.CacheService
	exporter  ExportService
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
	ttl       time.Duration
}

// NewResultService serves persisted results. cacheService may be nil.
func NewResultService(repo repositories.ResultRepository, cacheService cache.CacheService, exporter ExportService,
	v *validator.Validator, logger *slog.Logger, ttl time.Duration) ResultService {
	return &resultService{
		repo:      repo,
		cache:     cacheService,
		exporter:  exporter,
		validator: v,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "meow-mocks", Component: "result"}),
		ttl:       ttl,
	}
}

func (s *resultService) Get(ctx context.Context, sessionID string) (*models.Submission, error) {
	_, sub, err := s.load(ctx, sessionID)
	return sub, err
}

// load reads a result from the database, falling back to the cached payload
// when the row was never written. row is nil in that case.
func (s *resultService) load(ctx context.Context, sessionID string) (*models.ExamResult, *models.Submission, error) {
	row, err := s.repo.GetBySessionID(ctx, sessionID)
	if err == nil {
		sub, err := row.Submission()
		if err != nil {
			return nil, nil, err
		}
		return row, sub, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, nil, fmt.Errorf("failed to get exam result: %w", err)
	}

	if s.cache != nil {
		var sub models.Submission
		cacheErr := s.cache.Get(ctx, cache.ResultKey(sessionID), &sub)
		if cacheErr == nil {
			s.logger.Warn("Serving exam result from cache", "session_id", sessionID)
			return nil, &sub, nil
		}
		if !errors.Is(cacheErr, cache.ErrCacheMiss) {
			s.logger.Warn("Failed to read cached exam result", "session_id", sessionID, "error", cacheErr)
		}
	}
	return nil, nil, ErrResultNotFound
}

// AddNote attaches a review note to the question at index and persists it.
func (s *resultService) AddNote(ctx context.Context, sessionID string, index int, note string) (detail *models.QuestionDetail, err error) {
	op := s.opLogger.WithOperation(ctx, "add_note", sessionID)
	defer func() { op.LogResult(err) }()

	if utf8.RuneCountInString(note) > maxNoteLength {
		return nil, ValidationErrors{*NewValidationError("note", fmt.Sprintf("must be at most %d characters", maxNoteLength), nil)}
	}

	row, sub, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sub.Result == nil {
		return nil, ErrResultNotFound
	}
	if err = sub.Result.AttachNote(index, note); err != nil {
		return nil, err
	}

	if row == nil {
		if row, err = models.NewExamResult(sub); err != nil {
			return nil, err
		}
		if err = s.repo.Create(ctx, row); err != nil {
			return nil, fmt.Errorf("failed to persist exam result: %w", err)
		}
	} else {
		if err = row.SetSubmission(sub); err != nil {
			return nil, err
		}
		if err = s.repo.Update(ctx, row); err != nil {
			return nil, fmt.Errorf("failed to save note: %w", err)
		}
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, cache.ResultKey(sessionID), sub, s.ttl); cacheErr != nil {
			s.logger.Warn("Failed to refresh cached exam result", "session_id", sessionID, "error", cacheErr)
		}
	}

	d := sub.Result.QuestionDetails[index]
	return &d, nil
}

// Delete removes a persisted result and everything cached for its session.
// A result that only ever reached the cache counts as found.
func (s *resultService) Delete(ctx context.Context, sessionID string) (err error) {
	op := s.opLogger.WithOperation(ctx, "delete_result", sessionID)
	defer func() { op.LogResult(err) }()

	found := true
	if err = s.repo.Delete(ctx, sessionID); err != nil {
		if !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to delete exam result: %w", err)
		}
		err = nil
		found = false
	}

	if s.cache != nil {
		if !found {
			var sub models.Submission
			found = s.cache.Get(ctx, cache.ResultKey(sessionID), &sub) == nil
		}
		if cacheErr := s.cache.DeletePattern(ctx, cache.KeyPattern(sessionID)); cacheErr != nil {
			s.logger.Warn("Failed to purge cached session entries", "session_id", sessionID, "error", cacheErr)
		}
	}

	if !found {
		return ErrResultNotFound
	}
	return nil
}

func (s *resultService) Analysis(ctx context.Context, sessionID string) (*models.TimingAnalysis, error) {
	sub, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return scoring.Analyze(sub.Test, sub.Answers, sub.TimeSpentSeconds), nil
}

func (s *resultService) Export(ctx context.Context, sessionID string, format models.ExportFormat) (file *ExportFile, err error) {
	op := s.opLogger.WithOperation(ctx, "export_result", sessionID)
	defer func() { op.LogResult(err) }()

	if format == "" {
		format = models.ExportJSON
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExportFormat, format)
	}

	sub, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if format == models.ExportXLSX {
		return s.exporter.XLSX(sub)
	}
	return s.exporter.JSON(sub)
}

func (s *resultService) List(ctx context.Context, filters repositories.ResultFilters) (*ResultListResponse, error) {
	if err := s.validator.Validate(filters); err != nil {
		return nil, err
	}
	if filters.Limit == 0 {
		filters.Limit = 20
	}

	rows, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam results: %w", err)
	}

	items := make([]ResultListItem, 0, len(rows))
	for _, row := range rows {
		percentage := 0.0
		if row.MaxScore != 0 {
			percentage = row.Score / row.MaxScore * 100
		}
		items = append(items, ResultListItem{
			SessionID:      row.SessionID,
			TestTitle:      row.TestTitle,
			CandidateName:  row.CandidateName,
			RollNumber:     row.RollNumber,
			Score:          row.Score,
			MaxScore:       row.MaxScore,
			Percentage:     percentage,
			Attempted:      row.Attempted,
			Correct:        row.Correct,
			Incorrect:      row.Incorrect,
			TotalQuestions: row.TotalQuestions,
			TimeSpent:      utils.FormatDuration(row.TimeSpentSeconds),
			AutoSubmitted:  row.AutoSubmitted,
			SubmittedAt:    row.SubmittedAt.Format(time.RFC3339),
		})
	}

	return &ResultListResponse{
		Results: items,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}
