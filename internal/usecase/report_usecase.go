package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/infrastructure/metrics"
)

// ReportUseCase builds per-client account statements over a date range.
// Reports are read-only aggregations; generated reports are cached briefly
// in Redis so repeated statement downloads don't hammer the database.
type ReportUseCase struct {
	accountRepo  AccountRepository
	movementRepo MovementRepository
	cache        Cache
	cacheTTL     time.Duration
	metrics      *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase. cache and m may be nil to
// disable report caching and metric recording.
func NewReportUseCase(
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
) *ReportUseCase {
	return &ReportUseCase{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      m,
	}
}

// GenerateReportInput represents input for generating a report. From and To
// are dates; the range covers both days in full.
type GenerateReportInput struct {
	ClientID string
	From     time.Time
	To       time.Time
}

// GenerateReport assembles the statement for every account the client owns.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, input GenerateReportInput) (*domain.Report, error) {
	clientID := strings.TrimSpace(input.ClientID)
	if clientID == "" {
		return nil, domain.ErrMissingClientID
	}

	if err := domain.ValidateDateRange(input.From, input.To); err != nil {
		return nil, err
	}

	from := startOfDay(input.From)
	to := endOfDay(input.To)

	cacheKey := fmt.Sprintf("report:%s:%s:%s",
		clientID, from.Format("2006-01-02"), input.To.Format("2006-01-02"))

	if cached, ok := uc.cachedReport(ctx, cacheKey); ok {
		if uc.metrics != nil {
			uc.metrics.ReportCacheHits.Inc()
		}

		return cached, nil
	}

	accounts, err := uc.accountRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, domain.ErrClientNotFound
	}

	report := &domain.Report{
		ID:          ulid.Make().String(),
		ClientID:    clientID,
		From:        from,
		To:          to,
		GeneratedAt: time.Now().UTC(),
		Accounts:    make([]*domain.AccountStatement, 0, len(accounts)),
	}

	for _, account := range accounts {
		movements, err := uc.movementRepo.ListByAccountAndDateRange(ctx, account.ID, from, to)
		if err != nil {
			return nil, err
		}

		report.Accounts = append(report.Accounts, domain.BuildStatement(account, movements))
	}

	uc.storeReport(ctx, cacheKey, report)

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.Inc()
	}

	return report, nil
}

func (uc *ReportUseCase) cachedReport(ctx context.Context, key string) (*domain.Report, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, false
	}

	return &report, true
}

func (uc *ReportUseCase) storeReport(ctx context.Context, key string, report *domain.Report) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}

	// Cache misses are served from the database anyway; errors here are
	// not worth failing the request over.
	_ = uc.cache.Set(ctx, key, string(raw), uc.cacheTTL)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
