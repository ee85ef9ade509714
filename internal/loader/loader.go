// Package loader reads test definitions from the tests directory or a URL.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/Rtx09x/Meow-Mocks/internal/errors"
	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/validator"
	"gopkg.in/yaml.v3"
)

const maxDefinitionBytes = 16 << 20

var (
	ErrNotFound          = errors.New("test definition not found")
	ErrUnsupportedFormat = errors.New("unsupported test definition format")
	ErrRemoteNotAllowed  = errors.New("remote test host not allowed")
	ErrTooLarge          = errors.New("test definition too large")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config controls where definitions are read from. Remote definitions are
// only fetched from RemoteHosts; an empty list disables URLs entirely.
type Config struct {
	TestsDir               string
	DefaultDurationMinutes int
	HTTPTimeout            time.Duration
	RemoteHosts            []string
	MaxBytes               int64
}

// Loader loads, normalizes and validates test definitions. Every failure is
// reported as a *errors.LoadError.
type Loader struct {
	cfg       Config
	client    *http.Client
	validator *validator.Validator
	logger    *slog.Logger
}

func New(cfg Config, v *validator.Validator, logger *slog.Logger) *Loader {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.DefaultDurationMinutes <= 0 {
		cfg.DefaultDurationMinutes = 180
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = maxDefinitionBytes
	}
	l := &Loader{
		cfg:       cfg,
		validator: v,
		logger:    logger,
	}
	l.client = &http.Client{
		Timeout: cfg.HTTPTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return l.checkHost(req.URL)
		},
	}
	return l
}

// Load reads a definition from an http(s) URL, a path relative to the tests
// directory, or a test id as returned by List.
func (l *Loader) Load(ctx context.Context, source string) (*models.TestDefinition, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, apperrors.NewLoadError(source, ErrNotFound)
	}

	var (
		data   []byte
		format Format
		id     string
		err    error
	)
	if u, ok := remoteURL(source); ok {
		if err = l.checkHost(u); err == nil {
			data, format, err = l.fetch(ctx, source)
		}
		id = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	} else {
		var path string
		path, err = l.resolve(source)
		if err == nil {
			data, err = l.readFile(path)
			format = formatOf(path)
			id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
	}
	if err != nil {
		l.logger.Warn("Failed to read test definition", "source", source, "error", err)
		return nil, apperrors.NewLoadError(source, err)
	}

	test, err := Parse(data, format)
	if err != nil {
		return nil, apperrors.NewLoadError(source, err)
	}
	if test.ID == "" {
		test.ID = id
	}

	if err := l.Prepare(test); err != nil {
		return nil, apperrors.NewLoadError(source, err)
	}

	l.logger.Info("Loaded test definition",
		"source", source,
		"test_id", test.ID,
		"questions", len(test.Questions))
	return test, nil
}

// Prepare normalizes and validates a definition that was decoded elsewhere.
func (l *Loader) Prepare(test *models.TestDefinition) error {
	if test == nil {
		return ErrNotFound
	}
	if err := l.validator.Validate(test); err != nil {
		return err
	}
	test.Normalize(l.cfg.DefaultDurationMinutes)
	return nil
}

// Parse decodes a definition in the given format.
func Parse(data []byte, format Format) (*models.TestDefinition, error) {
	var test models.TestDefinition
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &test); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &test); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &test, nil
}

// List describes every readable definition in the tests directory.
// Unreadable files are logged and skipped.
func (l *Loader) List(ctx context.Context) ([]models.TestSummary, error) {
	entries, err := os.ReadDir(l.cfg.TestsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tests directory: %w", err)
	}

	summaries := make([]models.TestSummary, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}

		test, err := l.Load(ctx, entry.Name())
		if err != nil {
			l.logger.Warn("Skipping invalid test definition", "file", entry.Name(), "error", err)
			continue
		}
		summaries = append(summaries, models.TestSummary{
			ID:             test.ID,
			Title:          test.TestTitle,
			Duration:       test.Duration,
			TotalQuestions: len(test.Questions),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (l *Loader) resolve(source string) (string, error) {
	root, err := filepath.Abs(l.cfg.TestsDir)
	if err != nil {
		return "", err
	}

	candidates := []string{source}
	if filepath.Ext(source) == "" {
		candidates = append(candidates, source+".json", source+".yaml", source+".yml")
	}

	for _, candidate := range candidates {
		// rooting the cleaned path keeps ".." from escaping the tests directory
		path := filepath.Join(root, filepath.Clean("/"+candidate))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, source)
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch test definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status fetching test definition: %s", resp.Status)
	}

	data, err := l.readAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read test definition body: %w", err)
	}

	format := formatOf(source)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		format = FormatYAML
	}
	return data, format, nil
}

// checkHost rejects hosts outside the configured allowlist before any request is made.
func (l *Loader) checkHost(u *url.URL) error {
	for _, allowed := range l.cfg.RemoteHosts {
		if strings.EqualFold(allowed, u.Hostname()) || strings.EqualFold(allowed, u.Host) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRemoteNotAllowed, u.Hostname())
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.readAll(f)
}

// readAll fails instead of truncating; a cut YAML document can still parse.
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.cfg.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, l.cfg.MaxBytes)
	}
	return data, nil
}

func remoteURL(source string) (*url.URL, bool) {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}
	return u, true
}

func formatOf(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
