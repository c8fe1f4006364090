// Package planner defines the contract of the remote financial planning
// service: reference-data lookups, recommendation calculation and report
// generation. The service is opaque; this package only describes what is
// sent and what comes back.
package planner

import (
	"context"
	"finplan/pkg/domain"
)

// ReportRequest is the body of a report generation request.
type ReportRequest struct {
	BusinessData    domain.BusinessProfile    `json:"businessData"`
	Recommendations *domain.RecommendationSet `json:"recommendations"`
	Format          domain.ReportFormat       `json:"format"`
}

// Report is a generated report file as returned by the service.
type Report struct {
	// ContentType is the MIME type announced by the service.
	ContentType string
	// Filename is the name suggested by the service, if any.
	Filename string
	// Data holds the complete file.
	Data []byte
}

// Client is the abstraction of the planning service.
//
// Errors are semantic: serrors.ErrRejected when the service answered with
// success=false or an error body (the message is the service's), and
// serrors.ErrUnavailable when it could not be reached or answered garbage.
//
//go:generate mockgen -package mockplanner -source=interface.go -destination=mock/mockplanner.go *
type Client interface {
	// Countries returns the supported countries.
	Countries(ctx context.Context) ([]domain.Country, error)
	// Industries returns the supported industries.
	Industries(ctx context.Context) ([]domain.Industry, error)
	// Currencies returns the supported currencies.
	Currencies(ctx context.Context) ([]domain.Currency, error)
	// CalculateRecommendations submits the combined intake payload and returns
	// the computed recommendation set.
	CalculateRecommendations(ctx context.Context, submission domain.Submission) (*domain.RecommendationSet, error)
	// GenerateReport requests a report file for the given data.
	GenerateReport(ctx context.Context, req ReportRequest) (*Report, error)
}
