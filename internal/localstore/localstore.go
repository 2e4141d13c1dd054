// Package localstore keeps incident reports and corrective actions in an
// embedded badger database on local disk. It is the default backend for a
// single clinic running one process.
//
// Keys are "incident/<id>" and "action/<incident id>" with ids zero padded to
// 20 digits, so a prefix scan returns records in id order. Values are JSON.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

const (
	incidentPrefix = "incident/"
	actionPrefix   = "action/"
	sequenceKey    = "seq/incident"

	// ids leased from badger per sequence refill
	sequenceBandwidth = 64
)

type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens (or creates) the database in dir. Badger's own log output goes
// to logger when it is not nil.
func Open(dir string, logger logrus.FieldLogger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if logger != nil {
		opts = opts.WithLogger(logger)
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open incident sequence: %w", err)
	}

	return &Store{db: db, seq: seq}, nil
}

// Close returns unused leased ids and closes the database.
func (s *Store) Close() error {
	if err := s.seq.Release(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("release incident sequence: %w", err)
	}
	return utils.ErrorWrapOrNil(s.db.Close(), "close badger")
}

func incidentKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", incidentPrefix, id))
}

func actionKey(incidentID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", actionPrefix, incidentID))
}

func (s *Store) CreateIncident(ctx context.Context, incident *types.IncidentReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("failed to allocate incident id: %w", err)
	}

	// sequences start at zero
	incident.ID = int64(next) + 1
	incident.CreatedAt = time.Now()
	if incident.Categories == nil {
		incident.Categories = []string{}
	}

	value, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to encode incident: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(incidentKey(incident.ID), value)
	})

	return utils.ErrorWrapOrNil(err, "failed to create incident")
}

func (s *Store) Incidents(ctx context.Context) ([]*types.IncidentReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	incidents := make([]*types.IncidentReport, 0)
	err := scan(s.db, incidentPrefix, func(val []byte) error {
		incident := new(types.IncidentReport)
		if err := json.Unmarshal(val, incident); err != nil {
			return fmt.Errorf("decode incident: %w", err)
		}
		incidents = append(incidents, incident)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}

	return incidents, nil
}

func (s *Store) Incident(ctx context.Context, id int64) (*types.IncidentReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	incident := new(types.IncidentReport)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(incidentKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, incident)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, types.ErrIncidentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incident %d: %w", id, err)
	}

	return incident, nil
}

// UpsertAction stores the action for its incident. An existing action keeps
// its id and creation time.
func (s *Store) UpsertAction(ctx context.Context, action *types.CorrectiveAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := actionKey(action.IncidentID)
		now := time.Now()

		existing := new(types.CorrectiveAction)
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, existing)
			}); err != nil {
				return fmt.Errorf("decode existing action: %w", err)
			}
			action.ID = existing.ID
			action.CreatedAt = existing.CreatedAt
		case errors.Is(err, badger.ErrKeyNotFound):
			if action.ID == "" {
				action.ID = utils.NanoID()
			}
			action.CreatedAt = now
		default:
			return err
		}

		action.UpdatedAt = now

		value, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("encode action: %w", err)
		}

		return txn.Set(key, value)
	})

	return utils.ErrorWrapOrNil(err, "failed to upsert corrective action")
}

func (s *Store) Actions(ctx context.Context) ([]*types.CorrectiveAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actions := make([]*types.CorrectiveAction, 0)
	err := scan(s.db, actionPrefix, func(val []byte) error {
		action := new(types.CorrectiveAction)
		if err := json.Unmarshal(val, action); err != nil {
			return fmt.Errorf("decode action: %w", err)
		}
		actions = append(actions, action)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corrective actions: %w", err)
	}

	return actions, nil
}

// scan calls fn with every value under prefix, in key order.
func scan(db *badger.DB, prefix string, fn func(val []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}
