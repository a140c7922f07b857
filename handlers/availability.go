package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"slotify/config"
	"slotify/models"
	"slotify/services/scheduling"
	"slotify/utils"
)

// SchedulingService is wired in main before the router starts.
var SchedulingService scheduling.Engine

// GetAvailabilityHandler returns the bookable slots for a provider, date
// and duration. Responses are cached in Redis under a per-provider-date
// version counter; any write to the provider's day bumps the counter and
// invalidates every cached variant at once.
func GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	date := c.Query("date")

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be an integer number of minutes"})
		return
	}
	step, err := resolveStep(c.Query("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step must be an integer number of minutes"})
		return
	}

	ctx := c.Request.Context()
	cacheKey := availabilityCacheKey(ctx, providerID, date, duration, step)

	cache := utils.GetCacheClient()
	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var slots []models.TimeSlot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			c.JSON(http.StatusOK, gin.H{"providerID": providerID, "date": date, "slots": slots, "cached": true})
			return
		}
	}

	slots, err := SchedulingService.GetAvailability(ctx, providerID, date, duration, step)
	if err != nil {
		respondError(c, err)
		return
	}

	if data, err := json.Marshal(slots); err == nil {
		ttl := time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second
		cache.Set(ctx, cacheKey, data, ttl)
	}

	c.JSON(http.StatusOK, gin.H{"providerID": providerID, "date": date, "slots": slots})
}

// SearchProvidersHandler lists providers that offer every requested
// service and still have a slot fitting the composed chain on the date.
func SearchProvidersHandler(c *gin.Context) {
	var input struct {
		ServiceIDs []string `json:"serviceIds"`
		Date       string   `json:"date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	providers, err := SchedulingService.SearchProvidersByService(c.Request.Context(), input.ServiceIDs, input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	c.JSON(http.StatusOK, gin.H{"date": input.Date, "providers": providers})
}

// resolveStep parses the step query parameter, falling back to the
// configured slot step when the caller leaves it out.
func resolveStep(raw string) (int, error) {
	if raw == "" {
		return config.AppConfig.SlotStepMinutes, nil
	}
	return strconv.Atoi(raw)
}

func availabilityCacheKey(ctx context.Context, providerID, date string, duration, step int) string {
	version, err := utils.GetCacheClient().Get(ctx, availabilityVersionKey(providerID, date)).Int64()
	if err != nil {
		version = 0
	}
	return fmt.Sprintf("availability:%s:%s:v%d:%d:%d", providerID, date, version, duration, step)
}

func availabilityVersionKey(providerID, date string) string {
	return fmt.Sprintf("availability_version:%s:%s", providerID, date)
}

// availabilityVersionTTL bounds how long a version counter lives. It
// far exceeds the slot-cache TTL, so a counter never resets while any
// cached variant it governs is still servable, yet counters for past
// dates do not pile up forever.
const availabilityVersionTTL = 24 * time.Hour

// invalidateAvailability bumps the version counter so cached slot lists
// for the provider's day stop being served.
func invalidateAvailability(ctx context.Context, providerID, date string) {
	cache := utils.GetCacheClient()
	key := availabilityVersionKey(providerID, date)
	cache.Incr(ctx, key)
	cache.Expire(ctx, key, availabilityVersionTTL)
}
