package reports_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/application/reports"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
	"github.com/jhoicas/supermarket-pos/pkg/logger"
)

// fakeCache cache en memoria con error inyectable.
type fakeCache struct {
	data map[string][]byte
	err  error
	gets int
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	if c.err != nil {
		return nil, c.err
	}
	return c.data[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.data[key] = value
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// El dashboard combina conteos del catálogo con las ventas de hoy y del mes.
func TestDashboard_CombinaConteosYVentas(t *testing.T) {
	repo := &fakeReportRepo{
		products:   120,
		lowStock:   7,
		outOfStock: 2,
		totals: repository.SalesTotals{
			Revenue:      decimal.RequireFromString("850.50"),
			Transactions: 14,
		},
	}
	uc := reports.NewDashboardUseCase(repo, nil, testLogger())

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 120, stats.TotalProducts)
	assert.EqualValues(t, 7, stats.LowStockCount)
	assert.EqualValues(t, 2, stats.OutOfStockCount)
	assert.True(t, decimal.RequireFromString("850.50").Equal(stats.TodaySales))
	assert.EqualValues(t, 14, stats.TodayTransactions)
	assert.True(t, decimal.RequireFromString("850.50").Equal(stats.MonthlySales))
	assert.EqualValues(t, 14, stats.MonthlyTransactions)

	// Dos rangos consultados: hoy y mes en curso
	require.Len(t, repo.queriedRange, 2)
}

// Catálogo vacío y sin ventas: todo en cero, sin errores.
func TestDashboard_SinDatos(t *testing.T) {
	uc := reports.NewDashboardUseCase(&fakeReportRepo{}, nil, testLogger())

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalProducts)
	assert.True(t, stats.TodaySales.IsZero())
	assert.True(t, stats.MonthlySales.IsZero())
}

// Cache hit: la segunda llamada se resuelve desde cache sin reconsultar la BD.
func TestDashboard_CacheHit(t *testing.T) {
	repo := &fakeReportRepo{products: 10}
	cache := newFakeCache()
	uc := reports.NewDashboardUseCase(repo, cache, testLogger())

	first, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "el primer miss debe poblar el cache")
	queriesAfterFirst := len(repo.queriedRange)

	second, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, queriesAfterFirst, len(repo.queriedRange), "el hit no debe reconsultar la BD")
	assert.Equal(t, first.TotalProducts, second.TotalProducts)
}

// Un cache roto nunca tumba el dashboard: se loguea y se va a la BD.
func TestDashboard_CacheCaidoNoFalla(t *testing.T) {
	repo := &fakeReportRepo{products: 10}
	cache := newFakeCache()
	cache.err = errors.New("connection refused")
	uc := reports.NewDashboardUseCase(repo, cache, testLogger())

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err, "el error de cache debe absorberse")
	assert.EqualValues(t, 10, stats.TotalProducts)
}

// Una entrada corrupta en cache se trata como miss.
func TestDashboard_CacheCorrupto(t *testing.T) {
	repo := &fakeReportRepo{products: 33}
	cache := newFakeCache()
	cache.data["dashboard:stats"] = []byte("{no es json")
	uc := reports.NewDashboardUseCase(repo, cache, testLogger())

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 33, stats.TotalProducts, "debe ignorar la entrada corrupta")

	// El refresh deja una entrada válida
	var cached dto.DashboardStatsDTO
	require.NoError(t, json.Unmarshal(cache.data["dashboard:stats"], &cached))
	assert.EqualValues(t, 33, cached.TotalProducts)
}
