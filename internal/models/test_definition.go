package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TestDefinition is a loaded mock test. It is treated as immutable once a session starts.
type TestDefinition struct {
	ID              string      `json:"id,omitempty" yaml:"id"`
	TestTitle       string      `json:"testTitle" yaml:"testTitle" validate:"required,max=200"`
	Duration        int         `json:"duration" yaml:"duration" validate:"min=0,max=1440"` // minutes
	Subjects        SubjectList `json:"subjects,omitempty" yaml:"subjects"`
	Questions       []Question  `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
	ImagePathPrefix string      `json:"imagePathPrefix,omitempty" yaml:"imagePathPrefix"`
	Instructions    string      `json:"instructions,omitempty" yaml:"instructions"`
}

// Normalize fills in derived fields. It must be called before a session is created.
func (t *TestDefinition) Normalize(defaultDurationMinutes int) {
	if t.Duration <= 0 {
		t.Duration = defaultDurationMinutes
	}
	t.Subjects = t.DerivedSubjects()
}

// DerivedSubjects lists subjects in order of first appearance among the questions.
func (t *TestDefinition) DerivedSubjects() []string {
	seen := make(map[string]struct{})
	subjects := make([]string, 0)
	for i := range t.Questions {
		subject := t.Questions[i].SubjectOrDefault()
		if _, ok := seen[subject]; ok {
			continue
		}
		seen[subject] = struct{}{}
		subjects = append(subjects, subject)
	}
	if len(subjects) == 0 {
		subjects = append(subjects, DefaultSubject)
	}
	return subjects
}

func (t *TestDefinition) DurationSeconds() int {
	return t.Duration * 60
}

// FirstIndexOfSubject returns the index of the first question in subject, or -1.
func (t *TestDefinition) FirstIndexOfSubject(subject string) int {
	for i := range t.Questions {
		if t.Questions[i].SubjectOrDefault() == subject {
			return i
		}
	}
	return -1
}

func (t *TestDefinition) IndexOf(globalID string) int {
	for i := range t.Questions {
		if t.Questions[i].GlobalID.String() == globalID {
			return i
		}
	}
	return -1
}

// SubjectList accepts either a list of names or a list of {"name": ...} objects.
type SubjectList []string

type subjectObject struct {
	Name string `json:"name" yaml:"name"`
}

func (s *SubjectList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(SubjectList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var obj subjectObject
			if err := json.Unmarshal(item, &obj); err != nil {
				return err
			}
			out = append(out, obj.Name)
			continue
		}
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			return fmt.Errorf("subjects: %w", err)
		}
		out = append(out, name)
	}
	*s = out
	return nil
}

func (s *SubjectList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("subjects: expected sequence at line %d", node.Line)
	}
	out := make(SubjectList, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.MappingNode {
			var obj subjectObject
			if err := item.Decode(&obj); err != nil {
				return err
			}
			out = append(out, obj.Name)
			continue
		}
		out = append(out, item.Value)
	}
	*s = out
	return nil
}

// CandidateData is passed through to results untouched.
type CandidateData struct {
	Name       string `json:"name" yaml:"name" validate:"required,max=100"`
	RollNumber string `json:"rollNumber" yaml:"rollNumber" validate:"required,max=50"`
	PhotoURL   string `json:"photoURL,omitempty" yaml:"photoURL"`
}

// TestSummary describes an available test definition.
type TestSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Duration       int    `json:"duration"`
	TotalQuestions int    `json:"total_questions"`
}
