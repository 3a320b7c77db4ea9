package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/analytics"
	"shopdash/auth"
)

// DashboardController serves the consolidated overview for a month/year
// selection.
type DashboardController struct {
	Aggregator *analytics.Aggregator
	Log        *zap.Logger
}

// monthYearParams reads ?month=&year= with the current month as default.
func monthYearParams(c *gin.Context) (int, int, bool) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, false
		}
		month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 || y > 9999 {
			return 0, 0, false
		}
		year = y
	}
	return month, year, true
}

// GetDashboard returns the (possibly cached) view-model for the session's
// shop and the selected month.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month or year"})
		return
	}

	s := auth.SessionFrom(c)
	vm, err := dc.Aggregator.Dashboard(c.Request.Context(), s.Views, s.ShopID, month, year)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}
	c.JSON(http.StatusOK, vm)
}
