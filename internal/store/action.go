package store

import (
	"context"
	"fmt"
	"time"

	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var actionColumns = utils.StructTagValues(types.CorrectiveAction{})

type ActionRepository struct {
	pool *pgxpool.Pool
}

func NewActionRepository(pool *pgxpool.Pool) *ActionRepository {
	return &ActionRepository{pool: pool}
}

// UpsertAction stores the action for its incident, replacing status, owner
// and due date when one already exists. The stored id and created_at are
// written back to action.
func (r *ActionRepository) UpsertAction(ctx context.Context, action *types.CorrectiveAction) error {

	now := time.Now()
	if action.ID == "" {
		action.ID = utils.NanoID()
	}
	action.CreatedAt = now
	action.UpdatedAt = now

	actionMap := utils.StructToMap(action)

	updateMap := make(map[string]any)
	for k, v := range actionMap {
		if k != "id" && k != "incident_id" && k != "created_at" {
			updateMap[k] = v
		}
	}

	query, args, err := psql().
		Insert(actionTableName).
		SetMap(actionMap).
		Suffix("ON CONFLICT (incident_id) DO UPDATE SET " + buildUpdateClause(updateMap) + " RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert action query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&action.ID, &action.CreatedAt)
	return utils.ErrorWrapOrNil(err, "failed to upsert corrective action")
}

func (r *ActionRepository) Actions(ctx context.Context) ([]*types.CorrectiveAction, error) {

	query, args, err := psql().
		Select(actionColumns...).
		From(actionTableName).
		OrderBy("incident_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate actions query: %w", err)
	}

	var actions = make([]*types.CorrectiveAction, 0)
	if err := pgxscan.Select(ctx, r.pool, &actions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch corrective actions: %w", err)
	}

	return actions, nil
}
