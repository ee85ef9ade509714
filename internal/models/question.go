package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type QuestionType string

const (
	SingleChoiceGeneral   QuestionType = "single_choice_general"
	SingleChoiceSubject   QuestionType = "single_choice_subject"
	MultipleChoiceSubject QuestionType = "multiple_choice_subject"
)

// DefaultSubject is the bucket used for questions without a subject.
const DefaultSubject = "General"

// ImagePathPlaceholder is substituted with the test's image path prefix when a question is rendered.
const ImagePathPlaceholder = "{IMAGE_PATH_PREFIX}"

// IsMultiple reports whether the question accepts a set of keys.
func (t QuestionType) IsMultiple() bool {
	return t == MultipleChoiceSubject
}

func (t QuestionType) IsValid() bool {
	switch t {
	case SingleChoiceGeneral, SingleChoiceSubject, MultipleChoiceSubject:
		return true
	}
	return false
}

// MarkingScheme is the pair of marks awarded for a correct and an incorrect attempt.
type MarkingScheme struct {
	Correct   float64 `json:"marks_correct"`
	Incorrect float64 `json:"marks_incorrect"`
}

var DefaultMarkingSchemes = map[QuestionType]MarkingScheme{
	SingleChoiceGeneral:   {Correct: 2, Incorrect: 0},
	SingleChoiceSubject:   {Correct: 3, Incorrect: -1},
	MultipleChoiceSubject: {Correct: 4, Incorrect: -1},
}

// FallbackMarkingScheme applies to question types with no default scheme.
var FallbackMarkingScheme = MarkingScheme{Correct: 1, Incorrect: 0}

func DefaultMarking(t QuestionType) MarkingScheme {
	if scheme, ok := DefaultMarkingSchemes[t]; ok {
		return scheme
	}
	return FallbackMarkingScheme
}

// Option is a single answer choice. Options keep their declaration order.
type Option struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// Options decodes from a JSON/YAML object {key: text} preserving key order,
// or from a list of {key, text} entries.
type Options []Option

func (o Options) Has(key string) bool {
	for _, opt := range o {
		if opt.Key == key {
			return true
		}
	}
	return false
}

func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}

func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}
		text, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(text)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *Options) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []Option
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*o = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return err
	}

	var opts Options
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("options: unexpected key token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("options: value for %q: %w", key, err)
		}
		opts = append(opts, Option{Key: key, Text: rawText(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = opts
	return nil
}

func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []Option
		if err := node.Decode(&list); err != nil {
			return err
		}
		*o = list
		return nil
	case yaml.MappingNode:
		opts := make(Options, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			opts = append(opts, Option{Key: node.Content[i].Value, Text: node.Content[i+1].Value})
		}
		*o = opts
		return nil
	default:
		return fmt.Errorf("options: expected mapping or sequence at line %d", node.Line)
	}
}

// rawText renders a JSON value as option text; non-string values keep their literal form.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// AnswerKey holds the correct option key(s). It accepts a bare key or a list of keys.
type AnswerKey []string

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*k = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var keys []FlexString
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return err
		}
		out := make(AnswerKey, len(keys))
		for i, key := range keys {
			out[i] = string(key)
		}
		*k = out
		return nil
	}

	var key FlexString
	if err := json.Unmarshal(trimmed, &key); err != nil {
		return err
	}
	*k = AnswerKey{string(key)}
	return nil
}

func (k *AnswerKey) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		out := make(AnswerKey, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, item.Value)
		}
		*k = out
	case yaml.ScalarNode:
		*k = AnswerKey{node.Value}
	default:
		return fmt.Errorf("correctAnswer: expected key or list at line %d", node.Line)
	}
	return nil
}

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", trimmed)
	}
	*f = FlexString(n.String())
	return nil
}

func (f *FlexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar at line %d", node.Line)
	}
	*f = FlexString(node.Value)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Question is one item of a test definition.
type Question struct {
	GlobalID       FlexString   `json:"globalId" yaml:"globalId" validate:"required"`
	DisplayID      FlexString   `json:"id" yaml:"id"`
	Subject        string       `json:"subject" yaml:"subject"`
	Type           QuestionType `json:"question_type" yaml:"question_type" validate:"required,question_type"`
	Text           string       `json:"text" yaml:"text" validate:"required"`
	Options        Options      `json:"options" yaml:"options" validate:"min=1"`
	CorrectAnswer  AnswerKey    `json:"correctAnswer" yaml:"correctAnswer" validate:"min=1"`
	MarksCorrect   *float64     `json:"marks_correct,omitempty" yaml:"marks_correct"`
	MarksIncorrect *float64     `json:"marks_incorrect,omitempty" yaml:"marks_incorrect"`
	Solution       string       `json:"solution,omitempty" yaml:"solution"`
}

// Marking resolves the marks for the question; each override applies independently.
func (q *Question) Marking() MarkingScheme {
	scheme := DefaultMarking(q.Type)
	if q.MarksCorrect != nil {
		scheme.Correct = *q.MarksCorrect
	}
	if q.MarksIncorrect != nil {
		scheme.Incorrect = *q.MarksIncorrect
	}
	return scheme
}

func (q *Question) SubjectOrDefault() string {
	if strings.TrimSpace(q.Subject) == "" {
		return DefaultSubject
	}
	return q.Subject
}

// Label is the display label, falling back to the 1-based position.
func (q *Question) Label(index int) string {
	if q.DisplayID != "" {
		return q.DisplayID.String()
	}
	return strconv.Itoa(index + 1)
}

// Render returns a copy with the image path placeholder substituted in every text field.
func (q Question) Render(imagePathPrefix string) Question {
	replace := func(s string) string {
		return strings.ReplaceAll(s, ImagePathPlaceholder, imagePathPrefix)
	}

	q.Text = replace(q.Text)
	q.Solution = replace(q.Solution)
	opts := make(Options, len(q.Options))
	for i, opt := range q.Options {
		opts[i] = Option{Key: opt.Key, Text: replace(opt.Text)}
	}
	q.Options = opts
	q.CorrectAnswer = append(AnswerKey(nil), q.CorrectAnswer...)
	return q
}
