package images

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/config"
	"github.com/calzalindo/catalog-backend/pkg/db/models"
	"github.com/calzalindo/catalog-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return NewRepository(conn)
}

func seed(t *testing.T, repo *Repository, rows ...models.Product) {
	t.Helper()
	for i := range rows {
		require.NoError(t, repo.db.Create(&rows[i]).Error)
	}
}

func newTestService(t *testing.T, repo *Repository, lookupURL string) Service {
	t.Helper()
	lookup, err := NewLookupClient(lookupURL, time.Second)
	require.NoError(t, err)

	cfg := config.ImagesConfig{
		PageLimit:     500,
		BatchSize:     10,
		BatchPause:    time.Millisecond,
		LookupTimeout: time.Second,
	}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	svc, err := NewService(repo, lookup, cfg, logg, nil)
	require.NoError(t, err)
	return svc
}

func TestCandidates_DistinctPagedByStock(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "A", Department: "DAMAS", AvailableStock: 2},
		models.Product{Code: 1, Name: "A", Department: "DAMAS", AvailableStock: 7},
		models.Product{Code: 2, Name: "B", Department: "DAMAS", AvailableStock: 5},
		models.Product{Code: 3, Name: "C", Department: "DAMAS", AvailableStock: 9},
		// A placeholder URL is as good as no image.
		models.Product{Code: 7, Name: "G", Department: "DAMAS", AvailableStock: 6, ImageURL: strPtr("/no_image.png")},
		// Already migrated, out of stock, or outside the departments.
		models.Product{Code: 4, Name: "D", Department: "DAMAS", AvailableStock: 3, ImageURL: strPtr("/x.jpg")},
		models.Product{Code: 5, Name: "E", Department: "DAMAS", AvailableStock: 0},
		models.Product{Code: 6, Name: "F", Department: "ACCESORIOS", AvailableStock: 8},
	)
	ctx := context.Background()

	codes, err := repo.Candidates(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, codes)

	codes, err = repo.Candidates(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 2}, codes)
}

func TestMigratePage_UpdatesEveryRowOfACode(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 10, Name: "A 38", Department: "DAMAS", AvailableStock: 4},
		models.Product{Code: 10, Name: "A 39", Department: "DAMAS", AvailableStock: 1},
		models.Product{Code: 20, Name: "B", Department: "DAMAS", AvailableStock: 2},
		models.Product{Code: 30, Name: "C", Department: "DAMAS", AvailableStock: 1},
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/10"):
			_, _ = w.Write([]byte(`{"url_absoluta":"http://deposito/imagenes/10/frente.jpg"}`))
		case strings.HasSuffix(r.URL.Path, "/20"):
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	svc := newTestService(t, repo, server.URL)

	report, err := svc.MigratePage(context.Background(), 500, 0)
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 2, report.NoImage)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, 500, report.NextOffset)

	require.Len(t, report.Details, 1)
	assert.Equal(t, 10, report.Details[0].Code)
	assert.Equal(t, "/proxy/imagen/10/frente.jpg", report.Details[0].URL)
	assert.Equal(t, int64(2), report.Details[0].Updated)

	var urls []string
	require.NoError(t, repo.db.Model(&models.Product{}).Where("codigo = ?", 10).Pluck("imagen_url", &urls).Error)
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.Equal(t, "/proxy/imagen/10/frente.jpg", u)
	}
}

func TestMigratePage_Paging(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "A", Department: "DAMAS", AvailableStock: 3},
		models.Product{Code: 2, Name: "B", Department: "DAMAS", AvailableStock: 2},
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(t, repo, server.URL)
	ctx := context.Background()

	report, err := svc.MigratePage(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.NextOffset)

	// The page after the last candidate processes nothing.
	report, err = svc.MigratePage(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 4, report.NextOffset)
}

func TestMigratePage_CountsNonWarehouseURLAsMissing(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "A", Department: "DAMAS", AvailableStock: 3},
		models.Product{Code: 2, Name: "B", Department: "DAMAS", AvailableStock: 2},
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1") {
			// Absolute URL without the /imagenes/ segment: unusable.
			_, _ = w.Write([]byte(`{"url_absoluta":"http://deposito/otros/1/frente.jpg"}`))
			return
		}
		_, _ = w.Write([]byte(`{"url_absoluta":"http://deposito/imagenes/2/frente.jpg"}`))
	}))
	defer server.Close()

	svc := newTestService(t, repo, server.URL)

	report, err := svc.MigratePage(context.Background(), 500, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.NoImage)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, report.Processed, report.Updated+report.NoImage+report.Errors)

	// The unusable URL is never written back.
	var urls []sql.NullString
	require.NoError(t, repo.db.Model(&models.Product{}).Where("codigo = ?", 1).Pluck("imagen_url", &urls).Error)
	require.Len(t, urls, 1)
	assert.False(t, urls[0].Valid)
}

func TestMigratePage_IsolatesLookupFailures(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "A", Department: "DAMAS", AvailableStock: 3},
		models.Product{Code: 2, Name: "B", Department: "DAMAS", AvailableStock: 2},
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1") {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`{"url_absoluta":"http://deposito/imagenes/2/frente.jpg"}`))
	}))
	defer server.Close()

	svc := newTestService(t, repo, server.URL)

	report, err := svc.MigratePage(context.Background(), 500, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Errors)
}

func TestUpdateImage(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 7, Name: "A 38", Department: "DAMAS", AvailableStock: 1},
		models.Product{Code: 7, Name: "A 39", Department: "DAMAS", AvailableStock: 2},
	)

	svc := newTestService(t, repo, "http://unused.invalid")

	result, err := svc.UpdateImage(context.Background(), 7, "/proxy/imagen/7/a.jpg")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(2), result.Updated)

	_, err = svc.UpdateImage(context.Background(), 0, "/x.jpg")
	assert.Error(t, err)

	_, err = svc.UpdateImage(context.Background(), 7, "")
	assert.Error(t, err)
}
