package server

import (
	"fmt"
	"net"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/robfig/cron"
	"golang.org/x/net/netutil"

	"github.com/Bennybas/hcp-hco-backend/cache"
)

// A slow warehouse means slow cold requests; cap concurrent connections
// so a burst of them cannot pile up unbounded.
const maxConcurrentConns = 256

// StartServer owns the http process and cron jobs
func StartServer(port int64, svc *cache.Service) {

	// Set up the cron jobs
	c := cron.New()
	for schedule, job := range jobs(svc) {
		c.AddFunc(schedule, job)
	}
	c.Start()

	r := mux.NewRouter()
	for url, handler := range handlers(svc) {
		r.HandleFunc(url, handler)
	}

	http.Handle("/", r)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		glog.Fatal(err)
	}
	listener = netutil.LimitListener(listener, maxConcurrentConns)

	// Start the HTTP server
	glog.Fatal(http.Serve(listener, nil))
}
