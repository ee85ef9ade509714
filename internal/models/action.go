package models

// ExamAction names a candidate action on the exam screen.
type ExamAction string

const (
	ActionSelect        ExamAction = "select"
	ActionToggle        ExamAction = "toggle"
	ActionClear         ExamAction = "clear"
	ActionMarkReview    ExamAction = "mark_review"
	ActionSaveNext      ExamAction = "save_next"
	ActionNavigate      ExamAction = "navigate"
	ActionSwitchSubject ExamAction = "switch_subject"
)

func (a ExamAction) IsValid() bool {
	switch a {
	case ActionSelect, ActionToggle, ActionClear, ActionMarkReview, ActionSaveNext, ActionNavigate, ActionSwitchSubject:
		return true
	}
	return false
}

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportXLSX ExportFormat = "xlsx"
)

func (f ExportFormat) IsValid() bool {
	return f == ExportJSON || f == ExportXLSX
}
