package controller

import (
	"net/http"

	"github.com/Bennybas/hcp-hco-backend/cache"
	h "github.com/Bennybas/hcp-hco-backend/helpers"
	"github.com/Bennybas/hcp-hco-backend/models"
)

// HCP360Controller is a web controller
type HCP360Controller struct {
	Cache *cache.Service
}

// Handle is the web handler for /hcp-360
func (ctl *HCP360Controller) Handle(w http.ResponseWriter, r *http.Request) {
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
func (ctl *HCP360Controller) Read(c *models.Context) {
	query := c.Request.URL.Query()
	f := models.HCP360FiltersFromQuery(query)

	results, status, err := models.FetchDataset(
		ctl.Cache,
		f.CacheKey(),
		f.Producer(),
		h.GetQueryFlag(query, "refresh"),
	)
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), status)
		return
	}

	c.RespondWithData(results, http.StatusOK)
}
