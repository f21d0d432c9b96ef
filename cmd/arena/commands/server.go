package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battlesnakeio/arena/api"
	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/hub"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
	"github.com/battlesnakeio/arena/scores/filestore"
	"github.com/battlesnakeio/arena/scores/redisstore"
	"github.com/battlesnakeio/arena/scores/sqlstore"
	"github.com/battlesnakeio/arena/worker"
)

var (
	listen       = ":3005"
	promEnable   = true
	promListen   = ":9000"
	storeKind    = "memory"
	storeURL     = ""
	tickInterval = config.TickInterval
	botInterval  = config.BotInterval
	botCount     = config.BotCount
	worldWidth   = config.WorldWidth
	worldHeight  = config.WorldHeight
)

func init() {
	f := serverCmd.Flags()
	f.StringVarP(&listen, "listen", "l", listen, "address to listen on")
	f.BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	f.StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	f.StringVar(&storeKind, "store", storeKind, "scores store (memory, redis, postgres, file)")
	f.StringVar(&storeURL, "store-url", storeURL, "redis url, postgres dsn or file path for the scores store")
	f.DurationVar(&tickInterval, "tick", tickInterval, "time between world ticks")
	f.DurationVar(&botInterval, "bot-interval", botInterval, "time between bot steering decisions")
	f.IntVar(&botCount, "bots", botCount, "number of bots to keep in the arena")
	f.Float64Var(&worldWidth, "width", worldWidth, "arena width")
	f.Float64Var(&worldHeight, "height", worldHeight, "arena height")
}

var serverCmd = &cobra.Command{
	Use:    "server",
	Short:  "serve the snake arena",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		settings := rules.DefaultSettings()
		settings.Width = worldWidth
		settings.Height = worldHeight
		world := rules.NewWorld(settings)
		log.Info(world.String())

		store, err := openStore(storeKind, storeURL)
		if err != nil {
			log.WithError(err).
				WithField("store", storeKind).
				Fatal("failed to open scores store")
		}
		store = scores.InstrumentStore(store)

		h := hub.New(world, store, hub.DefaultOptions())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := &worker.Worker{Hub: h, TickInterval: tickInterval}
		go func() {
			if err := w.Run(ctx); err != nil && err != context.Canceled {
				log.WithError(err).Error("tick loop failed")
			}
		}()
		bots := &worker.Bots{
			Hub:      h,
			Policy:   rules.NewWander(25),
			Interval: botInterval,
			Count:    botCount,
		}
		go func() {
			if err := bots.Run(ctx); err != nil && err != context.Canceled {
				log.WithError(err).Error("bot loop failed")
			}
		}()

		server := api.New(listen, h, store)
		go shutdownOnSignal(server, cancel)

		if err := server.WaitForExit(); err != nil {
			log.WithError(err).
				WithField("listen", listen).
				Fatal("api server failed")
		}
	},
}

func openStore(kind, url string) (scores.Store, error) {
	switch kind {
	case "memory", "":
		return scores.InMemStore(), nil
	case "redis":
		return redisstore.NewStore(url)
	case "postgres":
		return sqlstore.NewSQLStore(url)
	case "file":
		return filestore.NewFileStore(url)
	}
	return nil, errors.Errorf("unknown store %q", kind)
}

func shutdownOnSignal(server *api.Server, cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.WithField("signal", s.String()).Info("shutting down")
	cancel()

	ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("shutdown did not complete")
	}
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
