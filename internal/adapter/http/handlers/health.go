package handlers

import (
	"context"
	"os"
	"taskboard/internal/adapter/http/middleware"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	StatusOk           = "ok"
	StatusDown         = "down"
	StatusDisabled     = "disabled"
	healthCheckTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Mongo string `json:"mongo"`
	Redis string `json:"redis"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	mongo *mongo.Client
	// redis is nil when view params are kept in memory.
	redis *redis.Client
}

func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: mongoClient, redis: redisClient}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := 200
	message := StatusOk

	if !h.checkConnectionToMongo(ctx) {
		statusCode = 500
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	mongoStatus := StatusDown
	if h.checkConnectionToMongo(ctx) {
		mongoStatus = StatusOk
	}

	redisStatus := StatusDisabled
	if h.redis != nil {
		redisStatus = StatusDown
		if h.checkConnectionToRedis(ctx) {
			redisStatus = StatusOk
		}
	}

	c.JSON(200, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Mongo: mongoStatus,
			Redis: redisStatus,
		},
	})
}

func (h *HealthHandler) checkConnectionToMongo(ctx context.Context) bool {
	if h.mongo == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.mongo.Ping(timeoutCtx, readpref.Primary()) == nil
}

func (h *HealthHandler) checkConnectionToRedis(ctx context.Context) bool {
	timeoutCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.redis.Ping(timeoutCtx).Err() == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
