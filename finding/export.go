package finding

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportFormat represents the format for exporting findings.
type ExportFormat string

const (
	// FormatJSON exports findings as a JSON array.
	FormatJSON ExportFormat = "json"

	// FormatCSV exports findings as comma-separated values, one row per finding.
	FormatCSV ExportFormat = "csv"

	// FormatYAML exports findings as a YAML sequence.
	FormatYAML ExportFormat = "yaml"
)

// IsValid returns true if the export format is valid.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the export format.
func (f ExportFormat) String() string {
	return string(f)
}

// FileExtension returns the file extension for the export format.
func (f ExportFormat) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatYAML:
		return ".yaml"
	default:
		return ""
	}
}

// MimeType returns the MIME type for the export format.
func (f ExportFormat) MimeType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// ParseExportFormat parses a string into an ExportFormat value.
// Returns an error if the string is not a valid export format.
func ParseExportFormat(s string) (ExportFormat, error) {
	format := ExportFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid export format: %s", s)
	}
	return format, nil
}

// AllExportFormats returns all valid export formats.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{
		FormatJSON,
		FormatCSV,
		FormatYAML,
	}
}

// csvHeader is the column order of the CSV export.
var csvHeader = []string{"index", "title", "ref", "rating", "devices", "impact", "ease", "recommendation"}

// Export writes findings to w in the given format.
func Export(w io.Writer, format ExportFormat, findings []*Finding) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nonNil(findings)); err != nil {
			return fmt.Errorf("failed to encode findings as JSON: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(findings)); err != nil {
			return fmt.Errorf("failed to encode findings as YAML: %w", err)
		}
		return enc.Close()

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, f := range findings {
			record := []string{
				f.Index,
				f.Title,
				f.Key,
				f.Rating().String(),
				strings.Join(f.DeviceNames(), ";"),
				f.Impact,
				f.Ease,
				f.Recommendation,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row for %s: %w", f.Index, err)
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		return fmt.Errorf("invalid export format: %s", format)
	}
}

func nonNil(findings []*Finding) []*Finding {
	if findings == nil {
		return []*Finding{}
	}
	return findings
}
