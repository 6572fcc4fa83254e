package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.ProjectionResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ProjectionResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ProjectionResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, result *domain.ProjectionResult, dir, ext string) (string, error) {
	filename := filepath.Join(dir, fmt.Sprintf("cashflow_projection_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := WriteFile(f, result, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteFile runs a formatter and writes output to filename.
func WriteFile(f Formatter, result *domain.ProjectionResult, filename string) error {
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Render runs a formatter and writes output to w.
func Render(w io.Writer, f Formatter, result *domain.ProjectionResult) error {
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleSummaryFormatter{},
	CSVSnapshotExporter{},
	CSVDetailedExporter{},
	CSVGoalsExporter{},
	CSVScenarioExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	XLSXFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"verbose":      "console",
	"text":         "console",
	"summary":      "console-lite",
	"csv-summary":  "csv",
	"csv-detailed": "detailed-csv",
	"debts-csv":    "detailed-csv",
	"csv-goals":    "goals-csv",
	"goals":        "goals-csv",
	"scenarios":    "scenarios-csv",
	"csv-bands":    "scenarios-csv",
	"html-report":  "html",
	"json-pretty":  "json",
	"excel":        "xlsx",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileExtension returns the file extension for a canonical formatter name.
func FileExtension(name string) string {
	switch {
	case strings.HasPrefix(name, "console"):
		return "txt"
	case strings.Contains(name, "csv"):
		return "csv"
	default:
		return name
	}
}
