package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/scoring"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypeJSON = "application/json"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet   = "Summary"
	subjectsSheet  = "Subjects"
	questionsSheet = "Questions"
)

type exportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) ExportService {
	return &exportService{logger: logger}
}

// Build assembles the export document. Question text is reduced to plain text.
func (s *exportService) Build(sub *models.Submission) *models.ResultExport {
	result := sub.Result
	if result == nil {
		result = models.NewEmptyResultSet()
	}

	export := &models.ResultExport{
		TestTitle:          sub.Test.TestTitle,
		CandidateName:      sub.Candidate.Name,
		RollNumber:         sub.Candidate.RollNumber,
		TotalScore:         result.Score,
		MaxPossibleScore:   result.MaxScore,
		TotalQuestions:     result.TotalQuestions,
		AttemptedQuestions: result.Attempted,
		CorrectAnswers:     result.Correct,
		IncorrectAnswers:   result.Incorrect,
		TimeSpent:          sub.TimeSpentSeconds,
		TimeSpentFormatted: utils.FormatDuration(sub.TimeSpentSeconds),
		AutoSubmitted:      sub.AutoSubmitted,
		Subjects:           result.Subjects,
		TimingAnalysis:     scoring.Analyze(sub.Test, sub.Answers, sub.TimeSpentSeconds),
		Questions:          make([]models.ExportedQuestion, 0, len(sub.Test.Questions)),
	}

	for i := range sub.Test.Questions {
		q := &sub.Test.Questions[i]
		row := models.ExportedQuestion{
			ID:            q.DisplayID.String(),
			Subject:       q.SubjectOrDefault(),
			Text:          utils.StripHTML(q.Text),
			UserAnswer:    []string{},
			CorrectAnswer: append([]string{}, q.CorrectAnswer...),
		}
		if i < len(sub.Answers) {
			a := &sub.Answers[i]
			row.UserAnswer = append(row.UserAnswer, a.Selected...)
			row.TimeSpent = a.TimeSpentSeconds
			row.VisitCount = a.VisitCount
			row.Correctness = a.Correctness
		}
		if i < len(result.QuestionDetails) {
			d := &result.QuestionDetails[i]
			row.Score = d.Score
			row.MaxScore = d.MaxScore
			row.IsCorrect = d.Correct
			row.IsAttempted = d.Attempted
			row.Notes = d.Notes
		}
		row.TimeSpentFormatted = utils.FormatDuration(row.TimeSpent)
		export.Questions = append(export.Questions, row)
	}

	return export
}

func (s *exportService) JSON(sub *models.Submission) (*ExportFile, error) {
	data, err := json.MarshalIndent(s.Build(sub), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result export: %w", err)
	}
	return &ExportFile{
		FileName:    utils.ExportFileName(sub.Test.TestTitle, "json"),
		ContentType: contentTypeJSON,
		Data:        data,
	}, nil
}

// XLSX writes Summary, Subjects and Questions sheets.
func (s *exportService) XLSX(sub *models.Submission) (*ExportFile, error) {
	export := s.Build(sub)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Test", export.TestTitle},
		{"Candidate", export.CandidateName},
		{"Roll Number", export.RollNumber},
		{"Score", export.TotalScore},
		{"Max Score", export.MaxPossibleScore},
		{"Total Questions", export.TotalQuestions},
		{"Attempted", export.AttemptedQuestions},
		{"Correct", export.CorrectAnswers},
		{"Incorrect", export.IncorrectAnswers},
		{"Time Spent", export.TimeSpentFormatted},
		{"Auto Submitted", export.AutoSubmitted},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(subjectsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	subjects := [][]interface{}{{"Subject", "Total", "Attempted", "Correct", "Incorrect", "Score", "Max Score", "Time Spent", "Average Time"}}
	order := []string{}
	if sub.Result != nil {
		order = sub.Result.SubjectOrder
	}
	for _, name := range order {
		r := export.Subjects[name]
		if r == nil {
			continue
		}
		row := []interface{}{name, r.Total, r.Attempted, r.Correct, r.Incorrect, r.Score, r.MaxScore, "", ""}
		if timing, ok := export.TimingAnalysis.Subjects[name]; ok {
			row[7] = utils.FormatDuration(timing.TotalSeconds)
			row[8] = utils.FormatDuration(timing.AverageSeconds)
		}
		subjects = append(subjects, row)
	}
	if err := writeRows(f, subjectsSheet, subjects); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(questionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	questions := [][]interface{}{{"#", "ID", "Subject", "Question", "Your Answer", "Correct Answer", "Result", "Score", "Time Spent", "Visits", "Notes"}}
	for i, q := range export.Questions {
		questions = append(questions, []interface{}{
			i + 1, q.ID, q.Subject, q.Text,
			strings.Join(q.UserAnswer, ", "), strings.Join(q.CorrectAnswer, ", "),
			string(q.Correctness), q.Score, q.TimeSpentFormatted, q.VisitCount, q.Notes,
		})
	}
	if err := writeRows(f, questionsSheet, questions); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return &ExportFile{
		FileName:    utils.ExportFileName(sub.Test.TestTitle, "xlsx"),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
