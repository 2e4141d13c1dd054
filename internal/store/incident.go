package store

import (
	"context"
	"fmt"
	"time"

	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	incidentColumns         = utils.StructTagValues(types.IncidentReport{})
	incidentCategoryColumns = utils.StructTagValues(types.IncidentCategory{})
)

type IncidentRepository struct {
	pool *pgxpool.Pool
}

func NewIncidentRepository(pool *pgxpool.Pool) *IncidentRepository {
	return &IncidentRepository{pool: pool}
}

// CreateIncident inserts the report and its category rows in one transaction.
// ID and CreatedAt are assigned here.
func (r *IncidentRepository) CreateIncident(ctx context.Context, incident *types.IncidentReport) error {

	incident.CreatedAt = time.Now()

	incidentMap := utils.StructToMap(incident)
	delete(incidentMap, "id")

	query, args, err := psql().Insert(incidentTableName).SetMap(incidentMap).Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert incident query: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := tx.QueryRow(ctx, query, args...).Scan(&incident.ID); err != nil {
		return fmt.Errorf("failed to insert incident: %w", err)
	}

	if len(incident.Categories) > 0 {
		builder := psql().Insert(incidentCategoryTableName).Columns(incidentCategoryColumns...)
		for i, label := range incident.Categories {
			builder = builder.Values(incident.ID, i, label)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate insert categories query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert incident categories: %w", err)
		}
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit incident")
}

// Incidents returns every report ordered by id.
func (r *IncidentRepository) Incidents(ctx context.Context) ([]*types.IncidentReport, error) {

	query, args, err := psql().Select(incidentColumns...).From(incidentTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate incidents query: %w", err)
	}

	var incidents = make([]*types.IncidentReport, 0)
	if err := pgxscan.Select(ctx, r.pool, &incidents, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}

	if len(incidents) == 0 {
		return incidents, nil
	}

	categories, err := r.categories(ctx, nil)
	if err != nil {
		return nil, err
	}

	for _, incident := range incidents {
		incident.Categories = categories[incident.ID]
		if incident.Categories == nil {
			incident.Categories = []string{}
		}
	}

	return incidents, nil
}

func (r *IncidentRepository) Incident(ctx context.Context, id int64) (*types.IncidentReport, error) {

	query, args, err := psql().Select(incidentColumns...).From(incidentTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate incident query: %w", err)
	}

	var incident = new(types.IncidentReport)
	err = pgxscan.Get(ctx, r.pool, incident, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch incident %d: %w", id, err)
	}

	if err != nil {
		return nil, types.ErrIncidentNotFound
	}

	categories, err := r.categories(ctx, sq.Eq{"incident_id": id})
	if err != nil {
		return nil, err
	}

	incident.Categories = categories[id]
	if incident.Categories == nil {
		incident.Categories = []string{}
	}

	return incident, nil
}

// categories loads category rows grouped by incident, in selection order.
func (r *IncidentRepository) categories(ctx context.Context, where sq.Sqlizer) (map[int64][]string, error) {

	builder := psql().Select(incidentCategoryColumns...).From(incidentCategoryTableName).
		OrderBy("incident_id ASC", "position ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate incident categories query: %w", err)
	}

	var rows []*types.IncidentCategory
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch incident categories: %w", err)
	}

	out := make(map[int64][]string)
	for _, row := range rows {
		out[row.IncidentID] = append(out[row.IncidentID], row.Label)
	}

	return out, nil
}
