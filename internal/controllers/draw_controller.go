package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"lottodesk/internal/pkg/cwl"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxDrawCount = 1000

type DrawController struct {
	Client *cwl.Client
	Logger *zap.Logger
}

// GetRecentDraws returns the most recent draws, 30 unless ?count= says otherwise
func (dc *DrawController) GetRecentDraws(c *gin.Context) {
	count := dc.getCountWithDefault(c, 30)

	draws := dc.Client.FetchRecent(c.Request.Context(), count)

	c.JSON(http.StatusOK, gin.H{"draws": draws})
}

// GetDrawDetails fetches the details page a draw links to
func (dc *DrawController) GetDrawDetails(c *gin.Context) {
	link := c.Query("link")
	if link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link is required"})
		return
	}

	details, err := dc.Client.FetchDetails(c.Request.Context(), link)
	if err != nil {
		if errors.Is(err, cwl.ErrForeignLink) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		dc.Logger.Warn("failed to fetch draw details", zap.String("link", link), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch draw details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"details": details})
}

func (dc *DrawController) getCountWithDefault(c *gin.Context, defaultValue int) int {
	raw := c.Query("count")
	if raw == "" {
		return defaultValue
	}

	count, err := strconv.Atoi(raw)
	if err != nil || count <= 0 {
		dc.Logger.Debug("invalid count, using default", zap.String("count", raw), zap.Int("default", defaultValue))
		return defaultValue
	}
	return min(count, maxDrawCount)
}
