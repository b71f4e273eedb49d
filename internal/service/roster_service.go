package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

type rosterReader interface {
	ListClassStudents(ctx context.Context, institutionID, classLabel string) ([]models.Student, error)
	FindInvigilator(ctx context.Context, institutionID, teacherID string) (*models.Invigilator, error)
}

type rosterCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheRecorder interface {
	RecordCacheOperation(hit bool)
}

// RosterServiceConfig tunes roster caching.
type RosterServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// RosterService resolves class rosters and teacher records, caching rosters
// because allocation reads them repeatedly while a draft is being built.
type RosterService struct {
	repo    rosterReader
	cache   rosterCache
	metrics cacheRecorder
	logger  *zap.Logger
	cfg     RosterServiceConfig
}

// NewRosterService constructs the service.
func NewRosterService(repo rosterReader, cache rosterCache, metrics cacheRecorder, logger *zap.Logger, cfg RosterServiceConfig) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &RosterService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

func rosterCacheKey(institutionID, classLabel string) string {
	return fmt.Sprintf("roster:%s:%s", institutionID, classLabel)
}

// ClassStudents returns the active roster of one class, roll order.
func (s *RosterService) ClassStudents(ctx context.Context, institutionID, classLabel string) ([]models.Student, error) {
	key := rosterCacheKey(institutionID, classLabel)
	if s.cacheUsable() {
		var cached []models.Student
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.recordCache(true)
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("roster cache read failed", zap.Error(err), zap.String("key", key))
		}
		s.recordCache(false)
	}

	students, err := s.repo.ListClassStudents(ctx, institutionID, classLabel)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class roster")
	}

	if s.cacheUsable() && len(students) > 0 {
		if err := s.cache.Set(ctx, key, students, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("roster cache write failed", zap.Error(err), zap.String("key", key))
		}
	}
	return students, nil
}

// Invigilator resolves one teacher record.
func (s *RosterService) Invigilator(ctx context.Context, institutionID, teacherID string) (*models.Invigilator, error) {
	inv, err := s.repo.FindInvigilator(ctx, institutionID, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "invigilator not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load invigilator")
	}
	return inv, nil
}

// Invalidate drops cached rosters after upstream enrollment changes. An empty
// class label clears the whole institution.
func (s *RosterService) Invalidate(ctx context.Context, institutionID, classLabel string) error {
	if s.cache == nil {
		return nil
	}
	pattern := rosterCacheKey(institutionID, "*")
	if classLabel != "" {
		pattern = rosterCacheKey(institutionID, classLabel)
	}
	if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate roster cache")
	}
	s.logger.Sugar().Infow("roster cache invalidated", "pattern", pattern)
	return nil
}

func (s *RosterService) cacheUsable() bool {
	return s.cfg.CacheEnabled && s.cache != nil
}

func (s *RosterService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}
