package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"saleema/config"
	"saleema/infras/otel/mocks"
	packageMocks "saleema/internal/domains/tourpackage/mocks"
	"saleema/internal/domains/tourpackage/model"
	"saleema/internal/domains/tourpackage/model/dto"
	"saleema/internal/domains/tourpackage/service"
	cacheMocks "saleema/shared/cache/mocks"
	gDto "saleema/shared/dto"
)

var errCacheMiss = errors.New("cache miss")

func newPackageService(t *testing.T) (service.Package, *packageMocks.MockPackage, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := packageMocks.NewMockPackage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

// expectSave waits for the asynchronous cache write so it never outlives the test.
func expectSave(t *testing.T, mockCache *cacheMocks.MockRedisCache) {
	t.Helper()

	saved := make(chan struct{})

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
		DoAndReturn(func(_ context.Context, _ string, _ any, _ int) error {
			close(saved)

			return nil
		})

	t.Cleanup(func() {
		select {
		case <-saved:
		case <-time.After(time.Second):
			t.Error("cache save was not called")
		}
	})
}

func TestPackageService_Get(t *testing.T) {
	departure := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(t *testing.T, repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache)
		wantErr error
		want    dto.PackageResponse
	}{
		{
			name: "cache hit skips repository",
			setup: func(_ *testing.T, _ *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), "package:get:pkg-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.PackageResponse)
						res.ID = "pkg-1"
						res.Available = 4

						return nil
					})
			},
			want: dto.PackageResponse{ID: "pkg-1", Available: 4},
		},
		{
			name: "cache miss reads repository",
			setup: func(t *testing.T, repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Package{ID: "pkg-1", Name: "Umrah Plus Turki", Quota: 10, QuotaFilled: 6, DepartureDate: departure, Active: true}, nil)
				expectSave(t, cache)
			},
			want: dto.PackageResponse{ID: "pkg-1", Name: "Umrah Plus Turki", Quota: 10, QuotaFilled: 6, Available: 4, DepartureDate: "2026-12-01", Active: true},
		},
		{
			name: "unknown package",
			setup: func(_ *testing.T, repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{}, nil)
			},
			wantErr: model.ErrPackageNotFound,
		},
		{
			name: "repository error",
			setup: func(_ *testing.T, repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{}, errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newPackageService(t)
			tt.setup(t, repo, cache)

			got, err := svc.Get(context.Background(), "pkg-1")

			if tt.wantErr != nil {
				assert.Error(t, err)

				if errors.Is(tt.wantErr, model.ErrPackageNotFound) {
					assert.ErrorIs(t, err, model.ErrPackageNotFound)
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Available, got.Available)
			assert.Equal(t, tt.want.DepartureDate, got.DepartureDate)
		})
	}
}

func TestPackageService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Limit: 10, Page: 1}
	filter := dto.PackageFilter{Location: "Makkah"}.ToFilterGroup()

	t.Run("successful get all", func(t *testing.T) {
		svc, repo, cache := newPackageService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repo.EXPECT().Count(gomock.Any(), filter).Return(11, nil)
		repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Package{{ID: "pkg-1", Quota: 5}}, nil)

		saved := make(chan struct{}, 2)
		cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
			DoAndReturn(func(_ context.Context, _ string, _ any, _ int) error {
				saved <- struct{}{}

				return nil
			}).Times(2)

		got, err := svc.GetAll(context.Background(), params, filter)

		assert.NoError(t, err)
		assert.Equal(t, 11, got.TotalData)
		assert.Equal(t, 2, got.TotalPage)
		assert.Len(t, got.Packages, 1)
		assert.Equal(t, 5, got.Packages[0].Available)

		for range 2 {
			<-saved
		}
	})

	t.Run("count error", func(t *testing.T) {
		svc, repo, cache := newPackageService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repo.EXPECT().Count(gomock.Any(), filter).Return(0, errors.New("count error"))

		_, err := svc.GetAll(context.Background(), params, filter)

		assert.Error(t, err)
	})

	t.Run("get all error", func(t *testing.T) {
		svc, repo, cache := newPackageService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
		expectSave(t, cache)
		repo.EXPECT().GetAll(gomock.Any(), params, filter).Return(nil, errors.New("get all error"))

		_, err := svc.GetAll(context.Background(), params, filter)

		assert.Error(t, err)
	})
}

func TestPackageService_InvalidateCache(t *testing.T) {
	svc, _, cache := newPackageService(t)

	gomock.InOrder(
		cache.EXPECT().Delete(gomock.Any(), "package:get:pkg-1").Return(nil),
		cache.EXPECT().Clear(gomock.Any(), "package:gets:*").Return(errors.New("redis down")),
	)

	svc.InvalidateCache(context.Background(), "pkg-1")
}
