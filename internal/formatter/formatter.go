// package formatter renders station lists as plain text, CSV, Markdown, JSON, YAML or XLSX
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/desertthunder/stationer/internal/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output format accepted by [Export].
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatXLSX     Format = "xlsx"
)

// Binary reports whether the format cannot be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// ParseFormat resolves a format name. An empty name selects [FormatText].
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text, csv, markdown, json, yaml or xlsx)", s)
	}
}

// FormatStation renders a station as "frequency - name" with the frequency right-aligned to five columns.
func FormatStation(s models.Station) string {
	return fmt.Sprintf("%5s - %s", s.Frequency.String(), s.Name)
}

// SectionTitle renders a section heading with its station count.
func SectionTitle(title string, count int) string {
	return fmt.Sprintf("%s (%d)", title, count)
}

// WriteStations writes one [FormatStation] line per station.
func WriteStations(w io.Writer, stations []models.Station) error {
	for _, s := range stations {
		if _, err := fmt.Fprintln(w, FormatStation(s)); err != nil {
			return err
		}
	}
	return nil
}

// Export renders stations in the given format. The title is ignored by CSV.
func Export(format Format, title string, stations []models.Station) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(stations)
	case FormatMarkdown:
		return ExportToMarkdown(title, stations)
	case FormatJSON:
		return ExportToJSON(title, stations)
	case FormatYAML:
		return ExportToYAML(title, stations)
	case FormatXLSX:
		return ExportToXLSX(title, stations)
	default:
		return ExportToText(title, stations)
	}
}

// ExportToCSV converts stations to CSV format with columns: Frequency, Name, URL, RDS, Capacity, Tower
func ExportToCSV(stations []models.Station) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Frequency", "Name", "URL", "RDS", "Capacity", "Tower"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range stations {
		record := []string{
			s.Frequency.String(),
			s.Name,
			s.URL,
			strconv.FormatBool(s.HasRDS),
			strconv.FormatFloat(s.Capacity, 'f', -1, 64),
			s.Tower,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts stations to a Markdown table under a level one heading.
func ExportToMarkdown(title string, stations []models.Station) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	}
	buf.WriteString(fmt.Sprintf("**Stations**: %d\n\n", len(stations)))

	if len(stations) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| MHz | Name | RDS | kW | Tower |\n")
	buf.WriteString("|----:|------|:---:|---:|-------|\n")
	for _, s := range stations {
		name := s.Name
		if s.URL != "" {
			name = fmt.Sprintf("[%s](%s)", s.Name, s.URL)
		}
		rds := ""
		if s.HasRDS {
			rds = "+"
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			s.Frequency, name, rds, strconv.FormatFloat(s.Capacity, 'f', -1, 64), s.Tower))
	}

	return buf.Bytes(), nil
}

// ExportToText converts stations to the plain line format. An empty list renders nothing, title included.
func ExportToText(title string, stations []models.Station) ([]byte, error) {
	var buf bytes.Buffer
	if len(stations) == 0 {
		return buf.Bytes(), nil
	}

	if title != "" {
		buf.WriteString(SectionTitle(title, len(stations)) + "\n")
	}
	if err := WriteStations(&buf, stations); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stationRecord is the structured form of a station used by JSON and YAML exports.
type stationRecord struct {
	Frequency float64 `json:"frequency_mhz" yaml:"frequency_mhz"`
	Name      string  `json:"name" yaml:"name"`
	URL       string  `json:"url,omitempty" yaml:"url,omitempty"`
	RDS       bool    `json:"rds" yaml:"rds"`
	Capacity  float64 `json:"capacity_kw" yaml:"capacity_kw"`
	Tower     string  `json:"tower,omitempty" yaml:"tower,omitempty"`
}

type stationDocument struct {
	Title    string          `json:"title,omitempty" yaml:"title,omitempty"`
	Count    int             `json:"count" yaml:"count"`
	Stations []stationRecord `json:"stations" yaml:"stations"`
}

func newStationDocument(title string, stations []models.Station) stationDocument {
	doc := stationDocument{Title: title, Count: len(stations), Stations: make([]stationRecord, 0, len(stations))}
	for _, s := range stations {
		doc.Stations = append(doc.Stations, stationRecord{
			Frequency: s.Frequency.MHz(),
			Name:      s.Name,
			URL:       s.URL,
			RDS:       s.HasRDS,
			Capacity:  s.Capacity,
			Tower:     s.Tower,
		})
	}
	return doc
}

// ExportToJSON converts stations to an indented JSON document.
func ExportToJSON(title string, stations []models.Station) ([]byte, error) {
	data, err := json.MarshalIndent(newStationDocument(title, stations), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML converts stations to a YAML document.
func ExportToYAML(title string, stations []models.Station) ([]byte, error) {
	data, err := yaml.Marshal(newStationDocument(title, stations))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// xlsxSheet is the worksheet holding exported stations.
const xlsxSheet = "stations"

// ExportToXLSX converts stations to a single-sheet workbook with the same columns as [ExportToCSV].
func ExportToXLSX(title string, stations []models.Station) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", xlsxSheet)
	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
			return nil, fmt.Errorf("failed to set workbook title: %w", err)
		}
	}

	header := []any{"Frequency", "Name", "URL", "RDS", "Capacity", "Tower"}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write XLSX headers: %w", err)
	}

	for i, s := range stations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{s.Frequency.MHz(), s.Name, s.URL, s.HasRDS, s.Capacity, s.Tower}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write XLSX row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write XLSX: %w", err)
	}
	return buf.Bytes(), nil
}
