package controller

import (
	"net/http"

	"github.com/Bennybas/hcp-hco-backend/cache"
	"github.com/Bennybas/hcp-hco-backend/models"
)

// CacheController is the introspection and control surface for the
// cache
type CacheController struct {
	Cache *cache.Service
}

// CacheStatusResponse is the GET body: every cached key with its
// freshness, plus the cumulative counters
type CacheStatusResponse struct {
	Entries []cache.KeyStatus `json:"entries"`
	Stats   cache.Stats       `json:"stats"`
}

// Handle is the web handler for /api/v1/cache
func (ctl *CacheController) Handle(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w)
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), status)
		return
	}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "HEAD", "GET", "DELETE"})
	case "HEAD", "GET":
		ctl.Read(c)
	case "DELETE":
		ctl.Delete(c)
	default:
		c.RespondWithErrorMessage(
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed,
		)
	}
}

// Read handles GET
func (ctl *CacheController) Read(c *models.Context) {
	entries := ctl.Cache.Status()
	if entries == nil {
		entries = []cache.KeyStatus{}
	}

	c.RespondWithData(CacheStatusResponse{
		Entries: entries,
		Stats:   ctl.Cache.GetStats(),
	}, http.StatusOK)
}

// Delete handles DELETE. The store is emptied; the refresh schedule is
// not, so warm keys repopulate on their next due cycle.
func (ctl *CacheController) Delete(c *models.Context) {
	ctl.Cache.Clear()

	c.RespondWithData(map[string]bool{"cleared": true}, http.StatusOK)
}
