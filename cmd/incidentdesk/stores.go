package main

import (
	"context"
	"fmt"
	"time"

	"incidentdesk/internal/db"
	"incidentdesk/internal/incident"
	"incidentdesk/internal/localstore"
	"incidentdesk/internal/storage"
	"incidentdesk/internal/store"
	"incidentdesk/internal/taxonomy"
	"incidentdesk/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// app bundles what every command needs. Close releases the store.
type app struct {
	config    *types.Config
	logger    *logrus.Logger
	incidents *incident.Service
	close     func()
}

func (a *app) Close() {
	if a.close != nil {
		a.close()
	}
}

func setup(ctx context.Context, prefix string) (*app, error) {
	config, err := loadConfig(prefix)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(config)
	if err != nil {
		return nil, err
	}

	tax, err := taxonomy.Load(config.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	a := &app{config: config, logger: logger}

	switch config.StoreDriver {
	case types.StoreDriverPostgres:
		pool, err := db.Connect(ctx, config)
		if err != nil {
			return nil, err
		}
		a.incidents = incident.NewService(store.NewIncidentRepository(pool), store.NewActionRepository(pool), tax)
		a.close = pool.Close

	default:
		local, err := localstore.Open(config.DataDir, logger)
		if err != nil {
			return nil, err
		}
		a.incidents = incident.NewService(local, local, tax)
		a.close = func() {
			if err := local.Close(); err != nil {
				logger.WithError(err).Error("failed to close local store")
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"driver":     config.StoreDriver,
		"categories": len(tax.Categories()),
	}).Debug("store ready")

	return a, nil
}

// reportArchive returns nil when no bucket is configured.
func reportArchive(ctx context.Context, config *types.Config) (*storage.ReportArchive, error) {
	if config.ReportBucket == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	return storage.NewReportArchive(s3.NewFromConfig(awsConfig), config.ReportBucket, config.ReportPrefix), nil
}

func requirePostgres(config *types.Config) error {
	if config.StoreDriver != types.StoreDriverPostgres {
		return fmt.Errorf("this command needs STORE_DRIVER=%s", types.StoreDriverPostgres)
	}
	return nil
}
