package server

import (
	"net/http"

	"github.com/Bennybas/hcp-hco-backend/cache"
	"github.com/Bennybas/hcp-hco-backend/controller"
)

// handlers returns the route table. Every controller shares the one
// cache service constructed in main.
func handlers(svc *cache.Service) map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		"/fetch-data":         (&controller.MasterDataController{Cache: svc}).Handle,
		"/fetch-map-data":     (&controller.MapDataController{Cache: svc}).Handle,
		"/fetch-hcplandscape": (&controller.HCPLandscapeController{Cache: svc}).Handle,
		"/fetch-hcolandscape": (&controller.HCOLandscapeController{Cache: svc}).Handle,
		"/hcp-360":            (&controller.HCP360Controller{Cache: svc}).Handle,
		"/hco-360":            (&controller.HCO360Controller{Cache: svc}).Handle,

		"/api/v1/cache": (&controller.CacheController{Cache: svc}).Handle,
	}
}
