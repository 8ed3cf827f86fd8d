package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/news-map/app/news"
)

// NewHandler wires the HTTP handlers. reloader may be nil, which disables
// the reload endpoint.
func NewHandler(newsReader NewsReader, regions RegionLister, cacheHealth HealthReporter,
	reloader RegionReloader, defaultLimit int, version string) *Handler {
	return &Handler{
		news:         newsReader,
		regions:      regions,
		cache:        cacheHealth,
		reloader:     reloader,
		defaultLimit: defaultLimit,
		version:      version,
	}
}

func (h *Handler) GetRegionNews(c *gin.Context) {
	regionID := c.Param("id")
	if regionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing region id parameter"})
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	force, _ := strconv.ParseBool(c.Query("force"))

	result, status, err := h.news.RegionNews(c.Request.Context(), regionID, limit, force)
	if err != nil {
		if news.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
			return
		}
		slog.Error("Aggregation error", "region", regionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate region news"})
		return
	}

	c.Header("X-Cache", string(status))
	c.Header("X-News-Items", strconv.Itoa(result.Count))
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListRegions(c *gin.Context) {
	regions, err := h.regions.ListRegions(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "list_regions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	response := make([]regionResponse, 0, len(regions))
	for _, r := range regions {
		feeds := make([]feedResponse, 0, len(r.Feeds))
		for _, f := range r.Feeds {
			feeds = append(feeds, feedResponse{URL: f.URL, Category: f.Category})
		}
		response = append(response, regionResponse{
			ID:      r.ID,
			Name:    r.Name,
			Country: r.Country,
			Lat:     r.Lat,
			Lng:     r.Lng,
			Feeds:   feeds,
		})
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) ReloadRegion(c *gin.Context) {
	regionID := c.Param("id")

	enqueued, err := h.reloader.ReloadRegion(regionID)
	if err != nil {
		slog.Error("Error reloading region", "region", regionID, "error", err)
		if len(enqueued) == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Failed to reload region configuration",
				"details": err.Error(),
			})
			return
		}
	}

	taskList := make([]gin.H, 0, len(enqueued))
	for _, task := range enqueued {
		taskList = append(taskList, gin.H{
			"id":   task.GetID(),
			"type": task.GetType(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration reloaded and tasks enqueued",
		"region":  regionID,
		"tasks":   taskList,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) GetHealthDetails(c *gin.Context) {
	ctx := c.Request.Context()

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if regionCount, err := h.regions.GetRegionCount(ctx); err == nil {
		health["regions"] = regionCount
	} else {
		health["status"] = "degraded"
		health["regions_error"] = err.Error()
	}

	if h.cache != nil {
		cacheHealth := h.cache.Health(ctx)
		health["cache"] = cacheHealth
		if cacheHealth["status"] != "healthy" {
			health["status"] = "degraded"
		}
	}

	c.JSON(http.StatusOK, health)
}
