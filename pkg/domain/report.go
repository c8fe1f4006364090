package domain

import "strings"

// ReportFormat selects the file type of a generated report.
type ReportFormat string

const (
	// ReportPDF is the default report format.
	ReportPDF ReportFormat = "pdf"
	// ReportExcel is the spreadsheet report format.
	ReportExcel ReportFormat = "excel"
)

// ParseReportFormat maps user input to a ReportFormat. Empty input selects
// ReportPDF; "xlsx" and "spreadsheet" are accepted as aliases of ReportExcel.
func ParseReportFormat(s string) (ReportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return ReportPDF, true
	case "excel", "xlsx", "spreadsheet":
		return ReportExcel, true
	}

	return "", false
}

// Extension returns the conventional file extension of the format.
func (f ReportFormat) Extension() string {
	if f == ReportExcel {
		return "xlsx"
	}

	return "pdf"
}

// ContentType returns the MIME type of the format.
func (f ReportFormat) ContentType() string {
	if f == ReportExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "application/pdf"
}
