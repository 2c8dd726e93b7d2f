package sources

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"adsight/internal/timeframe"
)

// ErrNoConnection is returned when the repository has no database handle.
var ErrNoConnection = errors.New("database connection unavailable")

// Repository reads both report sources through an injected gorm handle.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRepository creates a repository bound to db.
func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// FetchAdsDataset reads and normalizes every ads row. A missing or empty
// table yields an empty dataset and no error.
func (r *Repository) FetchAdsDataset(ctx context.Context) ([]AdRecord, error) {
	raw, err := r.fetchRaw(ctx, AdsSource)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			r.logger.Debug("Ads dataset unavailable", slog.Any("error", err))
			return nil, nil
		}
		return nil, err
	}
	return NormalizeAds(raw, r.logger), nil
}

// FetchBusinessDataset reads and normalizes every sales/traffic row. A
// missing or empty table yields an empty dataset and no error.
func (r *Repository) FetchBusinessDataset(ctx context.Context) ([]BusinessRecord, error) {
	raw, err := r.fetchRaw(ctx, BusinessSource)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			r.logger.Debug("Business dataset unavailable", slog.Any("error", err))
			return nil, nil
		}
		return nil, err
	}
	return NormalizeBusiness(raw, r.logger), nil
}

// FetchDataset reads both sources.
func (r *Repository) FetchDataset(ctx context.Context) (Dataset, error) {
	ads, err := r.FetchAdsDataset(ctx)
	if err != nil {
		return Dataset{}, err
	}
	business, err := r.FetchBusinessDataset(ctx)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Ads: ads, Business: business}, nil
}

// SumBusinessSales totals ordered product sales for the inclusive day range.
// A nil bound is open. A missing table sums to 0. Amounts go through
// ParseCurrency so the total matches the normalized dataset; unparsable
// values count as 0 and are logged.
func (r *Repository) SumBusinessSales(ctx context.Context, from, to *time.Time) (float64, error) {
	if r.db == nil {
		return 0, ErrNoConnection
	}
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(BusinessTable) {
		return 0, nil
	}

	q := db.Table(BusinessTable).Select("ordered_product_sales")
	if from != nil {
		q = q.Where("date(date) >= ?", from.Format(timeframe.LabelFormat))
	}
	if to != nil {
		q = q.Where("date(date) <= ?", to.Format(timeframe.LabelFormat))
	}

	rows, err := q.Rows()
	if err != nil {
		return 0, fmt.Errorf("sum business sales: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	invalid := 0
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return 0, fmt.Errorf("sum business sales: %w", err)
		}
		if !value.Valid {
			continue
		}
		amount, err := ParseCurrency(value.String)
		if err != nil {
			invalid++
			r.logger.Warn("Unparsable currency value, using 0", slog.Any("error", err))
			continue
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("sum business sales: %w", err)
	}

	if invalid > 0 {
		r.logger.Debug("Skipped unparsable sales values", slog.Int("count", invalid))
	}
	return total.InexactFloat64(), nil
}

// SumBusinessSalesInSpan totals sales for a trend bucket span.
func (r *Repository) SumBusinessSalesInSpan(ctx context.Context, span timeframe.Span) (float64, error) {
	return r.SumBusinessSales(ctx, &span.From, &span.To)
}

// CountRows returns the number of stored rows per source table; missing
// tables count as 0.
func (r *Repository) CountRows(ctx context.Context) (map[string]int64, error) {
	if r.db == nil {
		return nil, ErrNoConnection
	}
	db := r.db.WithContext(ctx)

	counts := make(map[string]int64, 2)
	for _, table := range []string{AdsTable, BusinessTable} {
		if !db.Migrator().HasTable(table) {
			counts[table] = 0
			continue
		}
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func (r *Repository) fetchRaw(ctx context.Context, schema SourceSchema) ([]RawRecord, error) {
	if r.db == nil {
		return nil, ErrNoConnection
	}
	db := r.db.WithContext(ctx)

	if !db.Migrator().HasTable(schema.Table) {
		return nil, fmt.Errorf("%w: table %s does not exist", ErrDataUnavailable, schema.Table)
	}

	columnTypes, err := db.Migrator().ColumnTypes(schema.Table)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", schema.Table, err)
	}
	present := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		present = append(present, ct.Name())
	}
	if err := schema.Validate(present); err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := db.Table(schema.Table).Select(schema.Selectable(present)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch %s: %w", schema.Table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table %s is empty", ErrDataUnavailable, schema.Table)
	}

	raw := make([]RawRecord, len(rows))
	for i, row := range rows {
		raw[i] = RawRecord(row)
	}
	return raw, nil
}
