package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders result with the named format into a timestamped file
// in dir and returns its path.
func GenerateReport(result *domain.ProjectionResult, format, dir string) (string, error) {
	f, err := LookupFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, result, dir, FileExtension(f.Name()))
}

// LookupFormatter resolves a format name or alias, listing the options on failure.
func LookupFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes a configuration document as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
