package web_test

import (
	"context"
	"testing"
	"time"

	"go-staffhub/internal/employee"
	employeeMock "go-staffhub/internal/employee/mock"
	"go-staffhub/internal/shared/counter"
	"go-staffhub/internal/web"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDashboardService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Cache Miss Loads From Repository", func(t *testing.T) {
		mockRepo := employeeMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		requests := counter.New()
		requests.Increment()
		requests.Increment()

		service := web.NewDashboardService(mockRepo, requests, rdb)

		redisMock.ExpectGet("dashboard:stats").RedisNil()
		// The cache write payload depends on JSON marshaling, matched loosely.
		redisMock.CustomMatch(func(expected, actual []interface{}) error {
			return nil
		}).ExpectSet("dashboard:stats", "", time.Minute).SetVal("OK")

		hire := employee.Employee{
			ID:         uuid.New(),
			FirstName:  "Jane",
			LastName:   "Doe",
			Email:      "jane.doe@example.com",
			Department: "Engineering",
			Salary:     decimal.NewFromInt(80000),
			HireDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			IsActive:   true,
			CreatedAt:  time.Now().UTC(),
		}

		mockRepo.EXPECT().
			CountByStatus(gomock.Any()).
			Return(int64(8), int64(2), nil)
		mockRepo.EXPECT().
			CountByDepartment(gomock.Any()).
			Return(map[string]int64{"Engineering": 5, "Sales": 3}, nil)
		mockRepo.EXPECT().
			FindRecentHires(gomock.Any(), 5).
			Return([]employee.Employee{hire}, nil)

		stats, err := service.Stats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), stats.TotalEmployees)
		assert.Equal(t, int64(8), stats.ActiveEmployees)
		assert.Equal(t, int64(2), stats.InactiveEmployees)
		assert.Equal(t, int64(5), stats.ByDepartment["Engineering"])
		assert.Len(t, stats.RecentHires, 1)
		assert.Equal(t, "jane.doe@example.com", stats.RecentHires[0].Email)
		assert.Equal(t, int64(2), stats.RequestsServed)
	})

	t.Run("Cache Hit Skips Repository But Counter Stays Live", func(t *testing.T) {
		mockRepo := employeeMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		requests := counter.New()
		for i := 0; i < 7; i++ {
			requests.Increment()
		}

		service := web.NewDashboardService(mockRepo, requests, rdb)

		cached := `{"total_employees":10,"active_employees":8,"inactive_employees":2,` +
			`"by_department":{"Engineering":5},"recent_hires":[],"requests_served":0}`
		redisMock.ExpectGet("dashboard:stats").SetVal(cached)

		// No repository expectations: a warm cache answers everything except
		// the request counter.
		stats, err := service.Stats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), stats.TotalEmployees)
		assert.Equal(t, int64(7), stats.RequestsServed)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Load Outlives Canceled Caller", func(t *testing.T) {
		mockRepo := employeeMock.NewMockRepository(ctrl)
		service := web.NewDashboardService(mockRepo, counter.New(), nil)

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		// The repository must see a live context even though the caller's
		// own context is already canceled.
		mockRepo.EXPECT().
			CountByStatus(gomock.Any()).
			DoAndReturn(func(ctx context.Context) (int64, int64, error) {
				assert.NoError(t, ctx.Err())
				return int64(3), int64(1), nil
			})
		mockRepo.EXPECT().
			CountByDepartment(gomock.Any()).
			DoAndReturn(func(ctx context.Context) (map[string]int64, error) {
				assert.NoError(t, ctx.Err())
				return map[string]int64{"Sales": 4}, nil
			})
		mockRepo.EXPECT().
			FindRecentHires(gomock.Any(), 5).
			DoAndReturn(func(ctx context.Context, limit int) ([]employee.Employee, error) {
				assert.NoError(t, ctx.Err())
				return nil, nil
			})

		stats, err := service.Stats(canceled)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), stats.TotalEmployees)
	})
}
