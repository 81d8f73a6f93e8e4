package images

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/config"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
	"github.com/calzalindo/catalog-backend/pkg/metrics"
)

// jobName labels the migration run in logs and metrics.
const jobName = "image_migration"

// imagePathRe extracts the warehouse-relative path from an absolute URL.
var imagePathRe = regexp.MustCompile(`/imagenes/(.+)$`)

// MigrationDetail records one successful code update.
type MigrationDetail struct {
	Code    int    `json:"codigo"`
	URL     string `json:"url"`
	Updated int64  `json:"actualizados"`
}

// MigrationReport summarizes one migration page.
type MigrationReport struct {
	Success    bool              `json:"success"`
	Processed  int               `json:"procesados"`
	Updated    int               `json:"exitosos"`
	NoImage    int               `json:"sinImagen"`
	Errors     int               `json:"errores"`
	Details    []MigrationDetail `json:"detalles"`
	Message    string            `json:"mensaje"`
	NextOffset int               `json:"siguienteOffset"`
}

// UpdateResult is the response of a manual image assignment.
type UpdateResult struct {
	Success  bool   `json:"success"`
	Updated  int64  `json:"actualizados"`
	Code     int    `json:"codigo"`
	ImageURL string `json:"imagen_url"`
}

// Service exposes the image back-fill operations.
type Service interface {
	MigratePage(ctx context.Context, limit, offset int) (*MigrationReport, error)
	UpdateImage(ctx context.Context, code int, imageURL string) (*UpdateResult, error)
}

type service struct {
	repo    *Repository
	lookup  *LookupClient
	cfg     config.ImagesConfig
	logg    *logger.Logger
	metrics *metrics.JobMetrics
}

// NewService constructs the image service. Metrics may be nil.
func NewService(repo *Repository, lookup *LookupClient, cfg config.ImagesConfig, logg *logger.Logger, jobMetrics *metrics.JobMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("images repository required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("image lookup client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, lookup: lookup, cfg: cfg, logg: logg, metrics: jobMetrics}, nil
}

// ProxyPath converts an absolute warehouse URL into the stored proxy path.
// The second return is false when the URL is not warehouse-shaped.
func ProxyPath(absoluteURL string) (string, bool) {
	match := imagePathRe.FindStringSubmatch(absoluteURL)
	if match == nil {
		return "", false
	}
	return "/proxy/imagen/" + match[1], true
}

// MigratePage back-fills image URLs for one page of candidate codes. The
// page is worked in small concurrent batches with a pause between them so
// the warehouse service is not hammered. Failures are isolated per code.
func (s *service) MigratePage(ctx context.Context, limit, offset int) (*MigrationReport, error) {
	if limit <= 0 {
		limit = s.cfg.PageLimit
	}
	if offset < 0 {
		offset = 0
	}

	start := time.Now()
	ctx = s.logg.WithJob(ctx, jobName)

	codes, err := s.repo.Candidates(ctx, limit, offset)
	if err != nil {
		s.metrics.IncFailure(jobName)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: migration candidates")
	}

	s.logg.Info(
		s.logg.WithFields(ctx, map[string]any{"candidates": len(codes), "offset": offset}),
		"image migration page started",
	)

	report := &MigrationReport{Details: []MigrationDetail{}}
	var mu sync.Mutex

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	for i := 0; i < len(codes); i += batchSize {
		end := i + batchSize
		if end > len(codes) {
			end = len(codes)
		}

		var wg sync.WaitGroup
		for _, code := range codes[i:end] {
			wg.Add(1)
			go func(code int) {
				defer wg.Done()
				s.migrateCode(ctx, code, report, &mu)
			}(code)
		}
		wg.Wait()

		if end < len(codes) && s.cfg.BatchPause > 0 {
			select {
			case <-ctx.Done():
				s.metrics.IncFailure(jobName)
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "image migration interrupted")
			case <-time.After(s.cfg.BatchPause):
			}
		}
	}

	report.Success = true
	report.NextOffset = offset + limit
	report.Message = fmt.Sprintf(
		"Exitosos: %d, Sin imagen: %d, Errores: %d, Total: %d",
		report.Updated, report.NoImage, report.Errors, report.Processed,
	)

	s.metrics.ObserveDuration(jobName, time.Since(start))
	s.metrics.IncSuccess(jobName)
	s.metrics.AddProducts(jobName, "updated", report.Updated)
	s.metrics.AddProducts(jobName, "missing", report.NoImage)
	s.metrics.AddProducts(jobName, "error", report.Errors)

	s.logg.Info(
		s.logg.WithFields(ctx, map[string]any{
			"processed": report.Processed,
			"updated":   report.Updated,
			"missing":   report.NoImage,
			"errors":    report.Errors,
		}),
		"image migration page finished",
	)

	return report, nil
}

func (s *service) migrateCode(ctx context.Context, code int, report *MigrationReport, mu *sync.Mutex) {
	mu.Lock()
	report.Processed++
	mu.Unlock()

	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	absoluteURL, found, err := s.lookup.Lookup(lookupCtx, code)
	if err != nil {
		codeCtx := s.logg.WithProductCode(ctx, code)
		s.logg.Warn(s.logg.WithField(codeCtx, "error", err.Error()), "image lookup failed")
		mu.Lock()
		report.Errors++
		mu.Unlock()
		return
	}
	if !found {
		mu.Lock()
		report.NoImage++
		mu.Unlock()
		return
	}

	proxyURL, ok := ProxyPath(absoluteURL)
	if !ok {
		// Absolute URL outside the warehouse layout: nothing usable to store.
		mu.Lock()
		report.NoImage++
		mu.Unlock()
		return
	}

	updated, err := s.repo.SetImageURLByCode(ctx, code, proxyURL)
	if err != nil {
		codeCtx := s.logg.WithProductCode(ctx, code)
		s.logg.Warn(s.logg.WithField(codeCtx, "error", err.Error()), "image url update failed")
		mu.Lock()
		report.Errors++
		mu.Unlock()
		return
	}

	mu.Lock()
	report.Updated++
	report.Details = append(report.Details, MigrationDetail{Code: code, URL: proxyURL, Updated: updated})
	mu.Unlock()
}

// UpdateImage assigns an image URL to every row sharing the code.
func (s *service) UpdateImage(ctx context.Context, code int, imageURL string) (*UpdateResult, error) {
	if code <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a positive product code is required")
	}
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an image URL is required")
	}

	updated, err := s.repo.SetImageURLByCode(ctx, code, imageURL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update image url")
	}

	return &UpdateResult{Success: true, Updated: updated, Code: code, ImageURL: imageURL}, nil
}
