package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Endpoint is the path of a vendor method and the query key used for its bulk form.
type Endpoint struct {
	Path  string
	Query string
}

// Config is built once at start-up and handed to constructors by value.
type Config struct {
	APIURL string
	Token  string

	endpoints map[string]Endpoint

	PageSize          int
	MaxInFlight       int
	RequestsPerSecond float64
	HTTPTimeout       time.Duration

	DatabaseURL string
	RedisURL    string
	MetricsPort string
	HTTPAddr    string
}

func Load() Config {
	// project root first, then the working directory
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	return Config{
		APIURL: getEnv("VWH_API_URL", "https://api.vwheritage.com"),
		Token:  os.Getenv("VWH_TOKEN"),
		endpoints: map[string]Endpoint{
			"product_info": {
				Path:  getEnv("VWH_PRODUCT_INFO_URL", "/product/info"),
				Query: getEnv("VWH_PRODUCT_INFO_QUERY", "itemnumbers"),
			},
			"product_info_id": {
				Path:  getEnv("VWH_PRODUCT_INFO_ID_URL", "/product/info/id"),
				Query: getEnv("VWH_PRODUCT_INFO_ID_QUERY", "ids"),
			},
			"product_info_sku": {
				Path:  getEnv("VWH_PRODUCT_INFO_SKU_URL", "/product/info/sku"),
				Query: getEnv("VWH_PRODUCT_INFO_SKU_QUERY", "skus"),
			},
			"product_list": {
				Path: getEnv("VWH_PRODUCT_LIST_URL", "/product/list"),
			},
			"image_info": {
				Path:  getEnv("VWH_IMAGE_INFO_URL", "/image/info"),
				Query: getEnv("VWH_IMAGE_INFO_QUERY", "itemnumbers"),
			},
		},
		PageSize:          getEnvInt("VWH_PAGE_SIZE", 80),
		MaxInFlight:       getEnvInt("VWH_MAX_IN_FLIGHT", 4),
		RequestsPerSecond: getEnvFloat("VWH_REQUESTS_PER_SECOND", 0),
		HTTPTimeout:       getEnvDuration("VWH_HTTP_TIMEOUT", 60*time.Second),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		MetricsPort:       getEnv("METRICS_PORT", "9090"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
	}
}

// WithEndpoint returns a copy of c with the endpoint for method replaced.
// The receiver is left untouched so a Config can be shared between clients.
func (c Config) WithEndpoint(method string, e Endpoint) Config {
	endpoints := make(map[string]Endpoint, len(c.endpoints)+1)
	for k, v := range c.endpoints {
		endpoints[k] = v
	}
	endpoints[method] = e
	c.endpoints = endpoints
	return c
}

func (c Config) Endpoint(method string) (Endpoint, bool) {
	e, ok := c.endpoints[method]
	return e, ok
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}

func getEnvFloat(k string, d float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return d
	}
	return v
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}
