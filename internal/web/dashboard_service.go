package web

import (
	"context"
	"encoding/json"
	"time"

	"go-staffhub/internal/employee"
	"go-staffhub/internal/shared/counter"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const dashboardStatsKey = "dashboard:stats"

// Statistics tolerate a minute of staleness, so the cache relies on a short
// TTL instead of invalidation hooks in the employee service.
const dashboardStatsTTL = time.Minute

type DashboardStats struct {
	TotalEmployees    int64                       `json:"total_employees"`
	ActiveEmployees   int64                       `json:"active_employees"`
	InactiveEmployees int64                       `json:"inactive_employees"`
	ByDepartment      map[string]int64            `json:"by_department"`
	RecentHires       []employee.EmployeeResponse `json:"recent_hires"`
	RequestsServed    int64                       `json:"requests_served"`
}

type DashboardService interface {
	Stats(ctx context.Context) (DashboardStats, error)
}

type dashboardService struct {
	repo     employee.Repository
	requests counter.Counter
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewDashboardService(
	repo employee.Repository,
	requests counter.Counter,
	rdb *redis.Client,
	logger ...*zap.Logger,
) DashboardService {
	l := zap.L().Named("web.dashboard")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("web.dashboard")
	}
	return &dashboardService{
		repo:     repo,
		requests: requests,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	// The request counter is live even when the rest comes from cache.
	served := int64(0)
	if s.requests != nil {
		served = s.requests.Snapshot()
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardStatsKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				stats.RequestsServed = served
				return stats, nil
			}
		}
	}

	// singleflight collapses a dashboard refresh stampede into one query set.
	// The load runs on a detached context so the shared result does not die
	// with whichever caller happened to start it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(dashboardStatsKey, func() (interface{}, error) {
		return s.loadStats(loadCtx)
	})
	if err != nil {
		return DashboardStats{}, err
	}

	stats := v.(DashboardStats)
	stats.RequestsServed = served
	return stats, nil
}

func (s *dashboardService) loadStats(ctx context.Context) (DashboardStats, error) {
	active, inactive, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("dashboard count by status failed", zap.Error(err))
		return DashboardStats{}, err
	}

	byDept, err := s.repo.CountByDepartment(ctx)
	if err != nil {
		s.logger.Error("dashboard count by department failed", zap.Error(err))
		return DashboardStats{}, err
	}

	recent, err := s.repo.FindRecentHires(ctx, 5)
	if err != nil {
		s.logger.Error("dashboard recent hires failed", zap.Error(err))
		return DashboardStats{}, err
	}

	recentResp := make([]employee.EmployeeResponse, 0, len(recent))
	for _, e := range recent {
		recentResp = append(recentResp, employee.MapToResponse(e))
	}

	stats := DashboardStats{
		TotalEmployees:    active + inactive,
		ActiveEmployees:   active,
		InactiveEmployees: inactive,
		ByDepartment:      byDept,
		RecentHires:       recentResp,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, dashboardStatsKey, payload, dashboardStatsTTL)
		}
	}

	return stats, nil
}
