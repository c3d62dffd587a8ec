package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"iqx_backend/internal/feature/dailyprices/domain/entity"
	"iqx_backend/internal/feature/dailyprices/usecase"
)

// mockPriceRepository is a func-field mock of the inner PriceRepository.
type mockPriceRepository struct {
	findSinceFn func(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error)
	createFn    func(ctx context.Context, p *entity.DailyPrice) error
	updateFn    func(ctx context.Context, ticker string, t time.Time, patch usecase.PricePatch) error
	deleteFn    func(ctx context.Context, ticker string, t time.Time) error
}

func (m *mockPriceRepository) List(ctx context.Context, f usecase.PriceFilter, skip, limit int) ([]entity.DailyPrice, error) {
	return nil, nil
}

func (m *mockPriceRepository) Count(ctx context.Context, f usecase.PriceFilter) (int64, error) {
	return 0, nil
}

func (m *mockPriceRepository) GetByKey(ctx context.Context, ticker string, t time.Time) (*entity.DailyPrice, error) {
	return nil, nil
}

func (m *mockPriceRepository) Create(ctx context.Context, p *entity.DailyPrice) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPriceRepository) Update(ctx context.Context, ticker string, t time.Time, patch usecase.PricePatch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ticker, t, patch)
	}
	return nil
}

func (m *mockPriceRepository) Delete(ctx context.Context, ticker string, t time.Time) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ticker, t)
	}
	return nil
}

func (m *mockPriceRepository) FindSince(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
	if m.findSinceFn != nil {
		return m.findSinceFn(ctx, ticker, since, limit)
	}
	return nil, nil
}

func TestNewCachingPriceRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "prices",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "prices",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPriceRepository(nil, tt.ttl, &mockPriceRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

func TestCachingPriceRepository_FindSince_NilRedis(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	expected := []entity.DailyPrice{{Time: day, Ticker: "AAA"}}

	inner := &mockPriceRepository{
		findSinceFn: func(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingPriceRepository(nil, 5*time.Minute, inner, "prices")

	prices, err := repo.FindSince(context.Background(), "AAA", nil, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != len(expected) {
		t.Errorf("expected %d prices, got %d", len(expected), len(prices))
	}
}

func TestCachingPriceRepository_FindSince_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cached := []entity.DailyPrice{{Time: day, Ticker: "AAA"}}
	b, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	since := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectGet("prices:AAA:2024-02-01:100").SetVal(string(b))

	innerCalled := false
	inner := &mockPriceRepository{
		findSinceFn: func(ctx context.Context, ticker string, s *time.Time, limit int) ([]entity.DailyPrice, error) {
			innerCalled = true
			return nil, nil
		},
	}
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")

	prices, err := repo.FindSince(context.Background(), "AAA", &since, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository must not be called on a cache hit")
	}
	if len(prices) != 1 || prices[0].Ticker != "AAA" {
		t.Errorf("unexpected prices: %+v", prices)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestCachingPriceRepository_FindSince_CacheMissPopulates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fromStore := []entity.DailyPrice{{Time: day, Ticker: "AAA"}}
	b, err := json.Marshal(fromStore)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	mock.ExpectGet("prices:AAA:all:50").RedisNil()
	mock.ExpectSet("prices:AAA:all:50", b, 5*time.Minute).SetVal("OK")

	inner := &mockPriceRepository{
		findSinceFn: func(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
			return fromStore, nil
		},
	}
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")

	prices, err := repo.FindSince(context.Background(), "AAA", nil, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 1 {
		t.Errorf("expected 1 price, got %d", len(prices))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestCachingPriceRepository_FindSince_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fromStore := []entity.DailyPrice{{Time: day, Ticker: "AAA"}}
	b, err := json.Marshal(fromStore)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	// A corrupted entry is dropped and the store answers.
	mock.ExpectGet("prices:AAA:all:50").SetVal("{not json")
	mock.ExpectDel("prices:AAA:all:50").SetVal(1)
	mock.ExpectSet("prices:AAA:all:50", b, 5*time.Minute).SetVal("OK")

	inner := &mockPriceRepository{
		findSinceFn: func(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
			return fromStore, nil
		},
	}
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")

	prices, err := repo.FindSince(context.Background(), "AAA", nil, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 1 {
		t.Errorf("expected 1 price, got %d", len(prices))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestCachingPriceRepository_FindSince_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("prices:AAA:all:50").RedisNil()

	wantErr := errors.New("db down")
	inner := &mockPriceRepository{
		findSinceFn: func(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
			return nil, wantErr
		},
	}
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")

	_, err := repo.FindSince(context.Background(), "AAA", nil, 50)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected inner error, got %v", err)
	}
}

func TestCachingPriceRepository_Create_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "prices:AAA:*", 200).SetVal([]string{"prices:AAA:all:50", "prices:AAA:2024-02-01:100"}, 0)
	mock.ExpectDel("prices:AAA:all:50", "prices:AAA:2024-02-01:100").SetVal(2)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inner := &mockPriceRepository{
		createFn: func(ctx context.Context, p *entity.DailyPrice) error { return nil },
	}
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")

	if err := repo.Create(context.Background(), &entity.DailyPrice{Time: day, Ticker: "AAA"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestCachingPriceRepository_Create_InnerErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	wantErr := errors.New("duplicate")
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inner := &mockPriceRepository{
		createFn: func(ctx context.Context, p *entity.DailyPrice) error { return wantErr },
	}
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")

	if err := repo.Create(context.Background(), &entity.DailyPrice{Time: day, Ticker: "AAA"}); !errors.Is(err, wantErr) {
		t.Errorf("expected inner error, got %v", err)
	}
	// No Scan/Del expectations were set, so any invalidation would fail here.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestCachingPriceRepository_Delete_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "prices:AAA:*", 200).SetVal([]string{"prices:AAA:all:50"}, 0)
	mock.ExpectDel("prices:AAA:all:50").SetVal(1)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := NewCachingPriceRepository(rdb, 5*time.Minute, &mockPriceRepository{}, "prices")

	if err := repo.Delete(context.Background(), "AAA", day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	repo := NewCachingPriceRepository(nil, 0, &mockPriceRepository{}, "prices")

	since := time.Date(2024, 2, 1, 15, 4, 5, 0, time.UTC)
	if got := repo.cacheKey("AAA", &since, 100); got != "prices:AAA:2024-02-01:100" {
		t.Errorf("unexpected key: %s", got)
	}
	if got := repo.cacheKey("AAA", nil, 100); got != "prices:AAA:all:100" {
		t.Errorf("unexpected key: %s", got)
	}
	// Separator characters in the ticker are escaped.
	if got := repo.cacheKey("A:1 B", nil, 5); got != "prices:A_1_B:all:5" {
		t.Errorf("unexpected key: %s", got)
	}
}
