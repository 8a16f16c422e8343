package repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/transport"
)

type StatsRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewStatsRepo(db *sqlx.DB) *StatsRepo {
	var format sq.PlaceholderFormat = sq.Question
	if db.DriverName() == "postgres" {
		format = sq.Dollar
	}
	return &StatsRepo{db: db, qb: sq.StatementBuilder.PlaceholderFormat(format)}
}

type statusCount struct {
	Status string `db:"delivery_status"`
	N      int64  `db:"n"`
}

func (r *StatsRepo) DeliveryStats(ctx context.Context) (transport.Stats, error) {
	var stats transport.Stats

	query, args := r.qb.Select("delivery_status", "COUNT(*) AS n").
		From("orders").
		Where(sq.Eq{"delivery_status": []string{
			string(models.DeliveryProcessing),
			string(models.DeliveryPickedUp),
			string(models.DeliveryDelivered),
			string(models.DeliveryCancelled),
		}}).
		GroupBy("delivery_status").
		MustSql()

	var counts []statusCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return stats, fmt.Errorf("failed to count orders by status: %w", err)
	}
	for _, c := range counts {
		switch models.DeliveryStatus(c.Status) {
		case models.DeliveryProcessing:
			stats.PendingDeliveries = c.N
		case models.DeliveryPickedUp:
			stats.InTransit = c.N
		case models.DeliveryDelivered:
			stats.Completed = c.N
		case models.DeliveryCancelled:
			stats.Cancelled = c.N
		}
	}

	query, args = r.qb.Select("COUNT(*)").From(models.DeliveryPerson{}.TableName()).MustSql()
	if err := r.db.GetContext(ctx, &stats.TotalDrivers, query, args...); err != nil {
		return stats, fmt.Errorf("failed to count drivers: %w", err)
	}
	return stats, nil
}
