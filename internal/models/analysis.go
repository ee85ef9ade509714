package models

// TimingBucket aggregates time over a group of questions.
type TimingBucket struct {
	Count          int `json:"count"`
	TotalSeconds   int `json:"total_time"`
	AverageSeconds int `json:"average_time"`
}

func (b *TimingBucket) Add(seconds int) {
	b.Count++
	b.TotalSeconds += seconds
}

// Finalize computes the rounded average.
func (b *TimingBucket) Finalize() {
	if b.Count == 0 {
		b.AverageSeconds = 0
		return
	}
	b.AverageSeconds = (b.TotalSeconds*2 + b.Count) / (b.Count * 2)
}

type SubjectTiming struct {
	TimingBucket
	CorrectSeconds      int `json:"time_correct"`
	IncorrectSeconds    int `json:"time_incorrect"`
	NotAttemptedSeconds int `json:"time_not_attempted"`
}

type CorrectnessTimings struct {
	Correct      TimingBucket `json:"correct"`
	Incorrect    TimingBucket `json:"incorrect"`
	NotAttempted TimingBucket `json:"not_attempted"`
}

type TimingAnalysis struct {
	TestTimeSeconds           int                       `json:"test_time"`
	TotalQuestionSeconds      int                       `json:"total_question_time"`
	AverageSecondsPerQuestion int                       `json:"average_time_per_question"`
	Subjects                  map[string]*SubjectTiming `json:"subject_timings"`
	SubjectOrder              []string                  `json:"subject_order"`
	Correctness               CorrectnessTimings        `json:"correctness_timings"`
}
