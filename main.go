package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	// Expose profiling info at /debug/pprof/
	_ "net/http/pprof"

	"github.com/golang/glog"
	_ "github.com/lib/pq"

	"github.com/Bennybas/hcp-hco-backend/cache"
	conf "github.com/Bennybas/hcp-hco-backend/config"
	h "github.com/Bennybas/hcp-hco-backend/helpers"
	"github.com/Bennybas/hcp-hco-backend/models"
	"github.com/Bennybas/hcp-hco-backend/server"
)

var configPath = flag.String("config", conf.DefaultConfigFilePath, "path to the config file")

func main() {

	// Go as fast as we can
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Parse flags, also used to init glog
	flag.Parse()

	// 100 megabytes max before rolling the log files
	glog.MaxSize = 1024 * 1024 * 100

	// Catch closing signal and flush logs
	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	go func() {
		<-sigc
		glog.Flush()
		os.Exit(1)
	}()

	if err := conf.Load(*configPath); err != nil {
		glog.Fatal(err)
	}

	if glog.V(2) {
		glog.Info("Initialising warehouse connection")
	}
	h.InitDBConnection(h.DBConfig{
		Host:     conf.ConfigStrings[conf.WarehouseHost],
		Port:     conf.ConfigInt64s[conf.WarehousePort],
		Database: conf.ConfigStrings[conf.WarehouseName],
		Username: conf.ConfigStrings[conf.WarehouseUsername],
		Password: conf.ConfigStrings[conf.WarehousePassword],
	})

	if glog.V(2) {
		glog.Info("Initialising cache service")
	}
	svc := cache.NewService(cache.Options{
		TTL:              time.Duration(conf.ConfigInt64s[conf.CacheTTLSeconds]) * time.Second,
		RefreshInterval:  time.Duration(conf.ConfigInt64s[conf.CacheRefreshSeconds]) * time.Second,
		RetryDelay:       time.Duration(conf.ConfigInt64s[conf.CacheRetrySeconds]) * time.Second,
		PollInterval:     time.Duration(conf.ConfigInt64s[conf.CachePollSeconds]) * time.Second,
		Workers:          int(conf.ConfigInt64s[conf.CacheWorkers]),
		OnRefreshFailure: models.AlertRefreshFailure,
	})

	// Warm the well-known keys before traffic arrives. Preload is
	// asynchronous; a key that has not landed yet simply computes
	// synchronously for its first caller.
	svc.Preload(models.PreloadEntries())

	if glog.V(2) {
		glog.Infof(
			"Starting server on port %d",
			conf.ConfigInt64s[conf.ListenPort],
		)
	}
	server.StartServer(conf.ConfigInt64s[conf.ListenPort], svc)
}
