package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/models"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
	"github.com/civicworks/hazard-portal/pkg/export"
	"github.com/civicworks/hazard-portal/pkg/storage"
)

type reportRepository interface {
	Create(ctx context.Context, report *models.HazardReport) (int64, error)
	List(ctx context.Context) ([]models.HazardReport, error)
	Resolve(ctx context.Context, id int64, afterImage string, resolvedAt time.Time) error
}

type imageStore interface {
	Save(filename string, data []byte) (string, error)
}

// CreateReportRequest is the citizen submission payload.
type CreateReportRequest struct {
	BeforeImage string  `json:"before_image" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"required"`
	Longitude   float64 `json:"longitude" validate:"required"`
}

// ResolveReportRequest is the admin resolution payload.
type ResolveReportRequest struct {
	AfterImage string `json:"after_image" validate:"required"`
}

// ExportResult is a rendered report table ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService implements the hazard-report use cases.
type ReportService struct {
	repo        reportRepository
	beforeStore imageStore
	afterStore  imageStore
	validator   *validator.Validate
	logger      *zap.Logger
	allowedExts map[string]struct{}
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
}

// NewReportService constructs a ReportService. allowedExtensions restricts
// accepted image subtypes; an empty list accepts any image data URI.
func NewReportService(repo reportRepository, beforeStore, afterStore imageStore, validate *validator.Validate, logger *zap.Logger, allowedExtensions []string) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	exts := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &ReportService{
		repo:        repo,
		beforeStore: beforeStore,
		afterStore:  afterStore,
		validator:   validate,
		logger:      logger,
		allowedExts: exts,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
	}
}

// jsonFieldNames maps struct fields to their wire names for error messages.
var jsonFieldNames = map[string]string{
	"BeforeImage": "before_image",
	"Description": "description",
	"Latitude":    "latitude",
	"Longitude":   "longitude",
	"AfterImage":  "after_image",
}

// Create validates the submission, writes the before photo, and inserts a
// pending row. The file write and the insert are two independent steps; a
// failure between them leaves an orphaned file.
func (s *ReportService) Create(ctx context.Context, req CreateReportRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, missingFieldError(err)
	}

	filename, err := s.saveImage(s.beforeStore, "hazard", req.BeforeImage)
	if err != nil {
		return 0, err
	}

	report := &models.HazardReport{
		BeforeImage:  filename,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Status:       models.ReportStatusPending,
		DateReported: time.Now(),
	}

	id, err := s.repo.Create(ctx, report)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}

	s.logger.Info("hazard reported", zap.Int64("report_id", id), zap.String("image", filename))
	return id, nil
}

// List returns all reports, newest first.
func (s *ReportService) List(ctx context.Context) ([]models.HazardReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return reports, nil
}

// Resolve writes the after photo and marks the report resolved. There is no
// existence check: resolving an unknown id updates zero rows and succeeds.
func (s *ReportService) Resolve(ctx context.Context, id int64, req ResolveReportRequest) error {
	if !storage.IsImageDataURI(req.AfterImage) {
		return appErrors.Clone(appErrors.ErrInvalidImage, "Invalid after image")
	}

	filename, err := s.saveImage(s.afterStore, "resolved", req.AfterImage)
	if err != nil {
		return err
	}

	if err := s.repo.Resolve(ctx, id, filename, time.Now()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve report")
	}

	s.logger.Info("hazard resolved", zap.Int64("report_id", id), zap.String("image", filename))
	return nil
}

// Export renders the full report table as CSV or PDF.
func (s *ReportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	reports, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Status", "Description", "Latitude", "Longitude", "Reported", "Resolved"},
	}
	for _, r := range reports {
		resolved := ""
		if r.DateResolved != nil {
			resolved = r.DateResolved.Format(time.RFC3339)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":          fmt.Sprintf("%d", r.ID),
			"Status":      string(r.Status),
			"Description": r.Description,
			"Latitude":    fmt.Sprintf("%g", r.Latitude),
			"Longitude":   fmt.Sprintf("%g", r.Longitude),
			"Reported":    r.DateReported.Format(time.RFC3339),
			"Resolved":    resolved,
		})
	}

	stamp := time.Now().Format("20060102_150405")
	switch strings.ToLower(format) {
	case "pdf":
		data, err := s.pdf.Render(dataset, "Hazard Reports")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{Filename: "hazard_reports_" + stamp + ".pdf", ContentType: "application/pdf", Data: data}, nil
	case "", "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{Filename: "hazard_reports_" + stamp + ".csv", ContentType: "text/csv", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

// saveImage decodes an image data URI and writes it under a
// timestamp-derived filename. Collisions are possible at one-second
// granularity.
func (s *ReportService) saveImage(store imageStore, prefix, dataURI string) (string, error) {
	ext, data, err := storage.DecodeImageDataURI(dataURI)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInvalidImage.Code, appErrors.ErrInvalidImage.Status, "Invalid image format")
	}

	if len(s.allowedExts) > 0 {
		if _, ok := s.allowedExts[strings.ToLower(ext)]; !ok {
			return "", appErrors.Clone(appErrors.ErrInvalidImage, "Invalid image format")
		}
	}

	filename := fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
	if _, err := store.Save(filename, data); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store image")
	}
	return filename, nil
}

// missingFieldError maps the first failed validation to the per-field
// message the front-end displays.
func missingFieldError(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		name := jsonFieldNames[fieldErrs[0].StructField()]
		if name == "" {
			name = strings.ToLower(fieldErrs[0].StructField())
		}
		return appErrors.Clone(appErrors.ErrValidation, "Missing required field: "+name)
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
