package controller

import (
	"net/http"

	"github.com/Bennybas/hcp-hco-backend/cache"
	h "github.com/Bennybas/hcp-hco-backend/helpers"
	"github.com/Bennybas/hcp-hco-backend/models"
)

// MapDataController is a web controller
type MapDataController struct {
	Cache *cache.Service
}

// Handle is the web handler for /fetch-map-data
func (ctl *MapDataController) Handle(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w)
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), status)
		return
	}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "HEAD", "GET"})
	case "HEAD", "GET":
		ctl.Read(c)
	default:
		c.RespondWithErrorMessage(
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed,
		)
	}
}

// Read handles GET
func (ctl *MapDataController) Read(c *models.Context) {
	results, status, err := models.FetchDataset(
		ctl.Cache,
		models.MapDataKey(),
		models.MapDataProducer(),
		h.GetQueryFlag(c.Request.URL.Query(), "refresh"),
	)
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), status)
		return
	}

	c.RespondWithData(results, http.StatusOK)
}
