// Package reports contiene los casos de uso de reportes de negocio y el
// dashboard operativo de la tienda.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
	"github.com/jhoicas/supermarket-pos/pkg/logger"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardUseCase genera el resumen operativo: conteos del catálogo más
// ventas de hoy y del mes en curso.
//
// Fuente de datos: ReportRepository (consultas read-only). El cache es
// opcional; con cache nulo todo va directo a la BD.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	cache      CachePort
	log        *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(reportRepo repository.ReportRepository, cache CachePort, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, cache: cache, log: log}
}

// GetStats construye el DashboardStatsDTO.
//
// Cinco consultas en paralelo:
//  1. CountProducts              → TotalProducts
//  2. CountLowStock              → LowStockCount
//  3. CountOutOfStock            → OutOfStockCount
//  4. GetSalesTotalsBetween(hoy) → TodaySales + TodayTransactions
//  5. GetSalesTotalsBetween(mes) → MonthlySales + MonthlyTransactions
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if cached := uc.fromCache(ctx); cached != nil {
		return cached, nil
	}

	now := time.Now()

	// ── Rangos de fecha (semiabiertos [start, end)) ───────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las 5 consultas DB ────────────────────────
	type countResult struct {
		n   int64
		err error
	}
	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}

	totalCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	outCh := make(chan countResult, 1)
	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)

	go func() {
		n, err := uc.reportRepo.CountProducts(ctx)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountOutOfStock(ctx)
		outCh <- countResult{n, err}
	}()
	go func() {
		t, err := uc.reportRepo.GetSalesTotalsBetween(ctx, todayStart, now)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.GetSalesTotalsBetween(ctx, monthStart, now)
		monthCh <- totalsResult{t, err}
	}()

	total := <-totalCh
	low := <-lowCh
	out := <-outCh
	today := <-todayCh
	month := <-monthCh

	if total.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", total.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: productos con stock bajo: %w", low.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard: productos agotados: %w", out.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}

	stats := &dto.DashboardStatsDTO{
		TotalProducts:       total.n,
		LowStockCount:       low.n,
		OutOfStockCount:     out.n,
		TodaySales:          today.totals.Revenue.Round(2),
		TodayTransactions:   today.totals.Transactions,
		MonthlySales:        month.totals.Revenue.Round(2),
		MonthlyTransactions: month.totals.Transactions,
	}
	uc.toCache(ctx, stats)
	return stats, nil
}

// fromCache intenta resolver el dashboard desde cache. Cualquier fallo se
// loguea y se trata como miss.
func (uc *DashboardUseCase) fromCache(ctx context.Context) *dto.DashboardStatsDTO {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, dashboardCacheKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: cache get falló, consultando BD")
		return nil
	}
	if raw == nil {
		return nil
	}
	var stats dto.DashboardStatsDTO
	if err := json.Unmarshal(raw, &stats); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: entrada de cache corrupta, consultando BD")
		return nil
	}
	return &stats
}

func (uc *DashboardUseCase) toCache(ctx context.Context, stats *dto.DashboardStatsDTO) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: cache set falló")
	}
}
