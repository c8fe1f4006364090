// Package report requests report files from the planning service and turns
// them into downloads.
package report

import (
	"context"
	"finplan/pkg/domain"
	"finplan/pkg/logger"
	"finplan/pkg/metrics"
	"finplan/pkg/planner"
	"finplan/pkg/serrors"
	"fmt"

	"go.uber.org/zap"
)

// FilenameBase is the name of every downloaded report, before its extension.
const FilenameBase = "financial_planning_report"

// DefaultFailureMessage is shown when a failed export carries no message.
const DefaultFailureMessage = "could not generate report"

// Download is a report ready to be handed to the user.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter issues report requests.
type Exporter struct {
	client      planner.Client
	instruments *metrics.Instruments
}

// NewExporter returns an Exporter using client. instruments is optional.
func NewExporter(client planner.Client, instruments *metrics.Instruments) *Exporter {
	return &Exporter{client: client, instruments: instruments}
}

// Export requests a report in format for the given data. On failure nothing
// but the error is returned.
func (e *Exporter) Export(
	ctx context.Context,
	business domain.BusinessProfile,
	recommendations *domain.RecommendationSet,
	format domain.ReportFormat,
) (*Download, error) {
	if recommendations == nil {
		return nil, serrors.With(serrors.ErrConflict, "no recommendations to report on")
	}
	if format == "" {
		format = domain.ReportPDF
	}

	rep, err := e.client.GenerateReport(ctx, planner.ReportRequest{
		BusinessData:    business,
		Recommendations: recommendations,
		Format:          format,
	})
	if err == nil && (rep == nil || len(rep.Data) == 0) {
		err = serrors.With(serrors.ErrUnavailable, "planning service returned an empty report")
	}
	if err != nil {
		e.instruments.CountReport(ctx, string(format), "failed")
		logger.Warn(ctx, "report export failed", zap.String("format", string(format)), zap.Error(err))

		return nil, fmt.Errorf("could not export report: %w", err)
	}
	e.instruments.CountReport(ctx, string(format), "ok")

	return &Download{
		Filename:    FilenameBase + "." + format.Extension(),
		ContentType: format.ContentType(),
		Data:        rep.Data,
	}, nil
}
