package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/models"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
)

type pinRepository interface {
	List(ctx context.Context) ([]models.TeacherPin, error)
	FindActiveByPin(ctx context.Context, pin string) (*models.TeacherPin, error)
	FindByID(ctx context.Context, id int64) (*models.TeacherPin, error)
	ExistsByPin(ctx context.Context, pin string) (bool, error)
	Create(ctx context.Context, pin, teacherName string, createdBy *int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type scanLogRepository interface {
	Insert(ctx context.Context, log *models.RFIDLog) (int64, error)
	List(ctx context.Context, limit, offset int) ([]models.RFIDLog, error)
	Count(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*models.ScanStats, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ClientMeta captures the caller context persisted with every scan event.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// VerifyPinRequest carries the kiosk PIN entry.
type VerifyPinRequest struct {
	Pin string `json:"pin"`
}

// VerifyPinResult identifies the teacher behind a verified PIN.
type VerifyPinResult struct {
	TeacherName string
	PinID       int64
}

// LogScanRequest is the trust-the-client scan payload.
type LogScanRequest struct {
	UserType   string  `json:"user_type"`
	CardID     string  `json:"card_id"`
	CardData   string  `json:"card_data"`
	TeacherPin *string `json:"teacher_pin"`
}

// AddPinRequest registers a new teacher PIN.
type AddPinRequest struct {
	Pin         string `json:"pin"`
	TeacherName string `json:"teacher_name"`
}

// LogsPage is one page of scan events plus paging metadata.
type LogsPage struct {
	Logs   []models.RFIDLog
	Total  int
	Limit  int
	Offset int
}

const (
	defaultLogLimit = 100
	statsCacheKey   = "rfid:stats"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// RFIDService implements PIN verification, scan logging, the admin PIN
// registry, and log retrieval.
type RFIDService struct {
	pins    pinRepository
	scans   scanLogRepository
	cache   statsCache
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

// NewRFIDService constructs an RFIDService. cache may be nil, in which case
// statistics are always computed from the store.
func NewRFIDService(pins pinRepository, scans scanLogRepository, cache statsCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *RFIDService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RFIDService{pins: pins, scans: scans, cache: cache, ttl: cacheTTL, metrics: metrics, logger: logger}
}

// VerifyPin checks the PIN against the active registry. A successful
// verification is logged best-effort: a failed log write never fails the
// verification itself.
func (s *RFIDService) VerifyPin(ctx context.Context, req VerifyPinRequest, meta ClientMeta) (*VerifyPinResult, error) {
	if !pinPattern.MatchString(req.Pin) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid PIN format")
	}

	record, err := s.pins.FindActiveByPin(ctx, req.Pin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid PIN")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up pin")
	}

	pin := req.Pin
	authLog := &models.RFIDLog{
		UserType:   models.UserTypeTeacher,
		CardID:     models.CardIDPinAuth,
		CardData:   "Teacher PIN authentication via " + record.TeacherName,
		TeacherPin: &pin,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
		IsVerified: true,
	}
	if _, err := s.scans.Insert(ctx, authLog); err != nil {
		s.logger.Error("failed to log pin authentication", zap.Error(err))
	} else {
		s.metrics.RecordScan(models.UserTypeTeacher)
	}

	return &VerifyPinResult{TeacherName: record.TeacherName, PinID: record.ID}, nil
}

// LogScan records a scan event unconditionally. The endpoint performs no
// card or PIN validation; every event is stored with is_verified true.
func (s *RFIDService) LogScan(ctx context.Context, req LogScanRequest, meta ClientMeta) (int64, error) {
	userType := req.UserType
	if userType == "" {
		userType = models.UserTypeStudent
	}

	log := &models.RFIDLog{
		UserType:   userType,
		CardID:     req.CardID,
		CardData:   req.CardData,
		TeacherPin: req.TeacherPin,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
		IsVerified: true,
	}

	id, err := s.scans.Insert(ctx, log)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to log scan")
	}

	s.metrics.RecordScan(userType)
	return id, nil
}

// ListPins returns the full PIN registry, newest first.
func (s *RFIDService) ListPins(ctx context.Context) ([]models.TeacherPin, error) {
	pins, err := s.pins.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pins")
	}
	return pins, nil
}

// AddPin registers a new PIN after format and uniqueness checks.
func (s *RFIDService) AddPin(ctx context.Context, req AddPinRequest, createdBy *int64) (int64, error) {
	if !pinPattern.MatchString(req.Pin) {
		return 0, appErrors.Clone(appErrors.ErrValidation, "PIN must be 4 digits")
	}

	exists, err := s.pins.ExistsByPin(ctx, req.Pin)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pin")
	}
	if exists {
		return 0, appErrors.Clone(appErrors.ErrConflict, "PIN already exists")
	}

	id, err := s.pins.Create(ctx, req.Pin, req.TeacherName, createdBy)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create pin")
	}
	return id, nil
}

// DeletePin hard-deletes a PIN row. Deleting an absent id still succeeds.
func (s *RFIDService) DeletePin(ctx context.Context, id int64) error {
	if err := s.pins.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pin")
	}
	return nil
}

// TogglePin flips a PIN's active flag and returns the new state.
func (s *RFIDService) TogglePin(ctx context.Context, id int64) (bool, error) {
	record, err := s.pins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "PIN not found")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up pin")
	}

	newState := !record.IsActive
	if err := s.pins.SetActive(ctx, id, newState); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle pin")
	}
	return newState, nil
}

// Logs returns one page of scan events plus the total count.
func (s *RFIDService) Logs(ctx context.Context, limit, offset int) (*LogsPage, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := s.scans.List(ctx, limit, offset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list logs")
	}
	total, err := s.scans.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count logs")
	}

	return &LogsPage{Logs: logs, Total: total, Limit: limit, Offset: offset}, nil
}

// Stats aggregates scan counters, consulting the optional cache first. Cache
// failures degrade to a direct query.
func (s *RFIDService) Stats(ctx context.Context) (*models.ScanStats, error) {
	if s.cache != nil {
		var cached models.ScanStats
		hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheLookup(hit)
		if hit {
			return &cached, nil
		}
	}

	stats, err := s.scans.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate stats")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}
