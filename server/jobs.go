package server

import (
	"context"

	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/server/gstorage"
	"github.com/Daskott/kard/shared"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
)

const datasetSyncJobTag = "sync-dataset"

// datasetSync keeps the local contacts file in step with a copy kept in
// google storage and reloads the served directory after each pull.
type datasetSync struct {
	storage gstorage.ObjectStore
	bucket  string
	object  string
	path    string
	store   *models.Store
}

func newDatasetSync(storage gstorage.ObjectStore, config shared.StorageConfig, path string) *datasetSync {
	return &datasetSync{
		storage: storage,
		bucket:  config.Bucket,
		object:  config.Object,
		path:    path,
	}
}

// pull downloads the dataset object over the local contacts file.
func (ds *datasetSync) pull(ctx context.Context) error {
	err := ds.storage.DownloadFile(ctx, ds.bucket, ds.object, ds.path)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		return errors.Wrapf(err, "gs://%s/%s", ds.bucket, ds.object)
	}

	return err
}

// run pulls and reloads the dataset. Failures leave the current directory
// in service.
func (ds *datasetSync) run() error {
	if err := ds.pull(context.Background()); err != nil {
		logg.Errorf("sync dataset: %v", err)
		return err
	}

	if err := ds.store.Reload(ds.path); err != nil {
		logg.Errorf("reload dataset: %v", err)
		return err
	}

	logg.Infof("dataset reloaded with %v contacts", ds.store.Directory().Len())
	return nil
}

func scheduleDatasetSync(scheduler *gocron.Scheduler, ds *datasetSync, cronExpression string) error {
	_, err := scheduler.Cron(cronExpression).Tag(datasetSyncJobTag).Do(ds.run)
	if err != nil {
		return errors.Wrap(err, "schedule dataset sync")
	}

	return nil
}
