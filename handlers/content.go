package handlers

import (
	"net/http"
	"strconv"
	"time"

	"themeweek/services/content"

	"github.com/gin-gonic/gin"
)

// NewGetTodayHandler returns the daily view for the current date: week index,
// weekly entry and the prompt for the weekday (or the weekend placeholder).
func NewGetTodayHandler(svc content.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := svc.ViewFor(time.Now())
		c.JSON(http.StatusOK, view)
	}
}

// NewGetWeekHandler returns the weekly entry at the given index.
func NewGetWeekHandler(svc content.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week index"})
			return
		}

		entry, ok := svc.EntryForWeek(index)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     content.PlaceholderUnavailable,
				"weekCount": svc.WeekCount(),
				"weekIndex": index,
			})
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}
