package server

import (
	"context"
	"fmt"
	"html/template"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/server/cron"
	"github.com/Daskott/kard/server/gstorage"
	"github.com/Daskott/kard/server/logger"
	"github.com/Daskott/kard/shared"
	"github.com/Daskott/kard/vcard"
	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var logg = logger.NewNop()

// kard serves the visiting card pages for one dataset.
type kard struct {
	config *shared.ServerConfig
	store  *models.Store
	logo   image.Image
	pages  *template.Template
}

func Start(configs *viper.Viper, devMode bool) {
	logg = logger.NewLogger(devMode)
	defer logg.Sync()

	config, err := LoadConfig(configs)
	fatalOnError(err)

	scheduler := cron.NewScheduler(config.Kard.Cron.TimeZone)

	var dataset *datasetSync
	if config.Google.Storage.EnableDatasetSync {
		gs, err := gstorage.NewGStorage(config.Google.ApplicationCredentials)
		fatalOnError(err)
		defer gs.Close()

		dataset = newDatasetSync(gs, config.Google.Storage, config.Data.ContactsFile)
		if err := dataset.pull(context.Background()); err != nil {
			logg.Warnf("using local dataset %v: %v", config.Data.ContactsFile, err)
		}
	}

	app, err := newKard(config)
	fatalOnError(err)

	if dataset != nil {
		dataset.store = app.store
		fatalOnError(scheduleDatasetSync(scheduler, dataset, config.Google.Storage.SyncSchedule))
	}
	scheduler.StartAsync()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Kard.Listener.Port),
		Handler:           app.handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go serve(server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cleanup(scheduler, server)
}

// LoadConfig decodes and validates the server config held by configs.
func LoadConfig(configs *viper.Viper) (*shared.ServerConfig, error) {
	config := &shared.ServerConfig{}
	if err := configs.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "unable to decode server config")
	}

	validate := validator.New()
	if err := RegisterValidators(validate); err != nil {
		return nil, err
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(err, "invalid server config")
	}

	if config.Kard.QR.Size == 0 {
		config.Kard.QR.Size = vcard.DefaultQRSize
	}

	return config, nil
}

func newKard(config *shared.ServerConfig) (*kard, error) {
	dir, err := models.LoadDirectory(config.Data.ContactsFile)
	if err != nil {
		return nil, err
	}

	app := &kard{
		config: config,
		store:  models.NewStore(dir),
		pages:  pageTemplates,
	}

	if config.Kard.QR.Logo != "" {
		data, err := os.ReadFile(config.Kard.QR.Logo)
		if err != nil {
			return nil, errors.Wrap(err, "read QR logo")
		}

		if app.logo, err = vcard.LoadLogo(data); err != nil {
			return nil, err
		}
	}

	logg.Infow("contacts loaded",
		zap.Int("count", dir.Len()),
		zap.Strings("sections", dir.Sections()),
	)

	return app, nil
}

// handler returns the site's routes wrapped in the middlewares that apply to
// every request, including those no route matches.
func (app *kard) handler() http.Handler {
	return loggingMiddleware(hostRedirectMiddleware(app.config.Kard.ProductionHost)(app.router()))
}

func cleanup(scheduler *gocron.Scheduler, server *http.Server) {
	scheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Kard server shutdown failed:%+s", err)
	}

	logg.Infof("Kard server stopped properly")
}
