package main

import (
	"context"
	goflag "flag"

	"github.com/Luismorlan/socialpost/app_config"
	"github.com/Luismorlan/socialpost/server"
	"github.com/Luismorlan/socialpost/store"
	. "github.com/Luismorlan/socialpost/utils"
	"github.com/Luismorlan/socialpost/utils/dotenv"
	. "github.com/Luismorlan/socialpost/utils/flag"
	. "github.com/Luismorlan/socialpost/utils/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

// run returns once the server stops. Tracer and profiler are stopped before
// it returns, whatever the outcome.
func run() error {
	if err := dotenv.LoadDotEnvs(); err != nil {
		return errors.Wrap(err, "fail to load env files")
	}

	cfg, err := app_config.ParseServerAppConfig(*AppConfigPath)
	if err != nil {
		return errors.Wrapf(err, "fail to parse app config %s", *AppConfigPath)
	}

	StartTracer()
	StartProfiler()
	defer cleanup()

	db, err := ConnectWithRetry(context.Background(), PoolOptions{
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return errors.Wrap(err, "fail to connect to database")
	}

	if *Migrate || *Seed {
		if err := DatabaseSetupAndMigration(db); err != nil {
			return errors.Wrap(err, "fail to migrate database")
		}
	}
	if *Seed {
		if err := LoadSampleData(db); err != nil {
			return errors.Wrap(err, "fail to load sample data")
		}
	}

	repo := store.NewPostStore(db, store.WithSearchLimit(cfg.SEARCH_LIMIT))
	router := server.NewRouter(repo, cfg)

	Log.WithFields(logrus.Fields{
		"addr":       cfg.LISTEN_ADDR,
		"playground": cfg.ENABLE_PLAYGROUND,
	}).Info("api server starts up")
	return errors.Wrap(router.Run(cfg.LISTEN_ADDR), "api server stopped")
}

func main() {
	goflag.Parse()
	if err := run(); err != nil {
		Log.Fatalln(err)
	}
}
