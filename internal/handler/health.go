package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ca-la/bin-sub002/internal/infra"
	"github.com/ca-la/bin-sub002/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
// Redis only backs the price cache and the quote queue, so a Redis outage
// degrades the service instead of failing the check.
func Health(db *gorm.DB, rdb *redis.Client, cacheCB *infra.CircuitBreaker, dlq *worker.RedisDLQ) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":       status == http.StatusOK,
			"degraded": redisStatus != "connected",
			"db":       dbStatus,
			"redis":    redisStatus,
		}
		if cacheCB != nil {
			body["price_cache_breaker"] = cacheCB.State().String()
		}
		if dlq != nil && redisStatus == "connected" {
			if n, err := dlq.Length(ctx, worker.QueuePricingQuote); err == nil {
				body["quote_dead_letters"] = n
			}
		}
		c.JSON(status, body)
	}
}
