package models

// ResultExport is the downloadable form of a graded submission.
type ResultExport struct {
	TestTitle          string                    `json:"testTitle"`
	CandidateName      string                    `json:"candidateName"`
	RollNumber         string                    `json:"rollNumber"`
	TotalScore         float64                   `json:"totalScore"`
	MaxPossibleScore   float64                   `json:"maxPossibleScore"`
	TotalQuestions     int                       `json:"totalQuestions"`
	AttemptedQuestions int                       `json:"attemptedQuestions"`
	CorrectAnswers     int                       `json:"correctAnswers"`
	IncorrectAnswers   int                       `json:"incorrectAnswers"`
	TimeSpent          int                       `json:"timeSpent"`
	TimeSpentFormatted string                    `json:"timeSpentFormatted"`
	AutoSubmitted      bool                      `json:"autoSubmitted"`
	Subjects           map[string]*SubjectResult `json:"subjects"`
	TimingAnalysis     *TimingAnalysis           `json:"timingAnalysis"`
	Questions          []ExportedQuestion        `json:"questions"`
}

type ExportedQuestion struct {
	ID                 string      `json:"id"`
	Subject            string      `json:"subject"`
	Text               string      `json:"text"`
	UserAnswer         []string    `json:"userAnswer"`
	CorrectAnswer      []string    `json:"correctAnswer"`
	Score              float64     `json:"score"`
	MaxScore           float64     `json:"maxScore"`
	IsCorrect          bool        `json:"isCorrect"`
	IsAttempted        bool        `json:"isAttempted"`
	TimeSpent          int         `json:"timeSpent"`
	TimeSpentFormatted string      `json:"timeSpentFormatted"`
	VisitCount         int         `json:"visitCount"`
	Correctness        Correctness `json:"correctness"`
	Notes              string      `json:"notes"`
}
