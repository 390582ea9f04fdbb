package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/logger"
)

const userAgent = "swipefeed/0.1.0"

var httpClient *resty.Client

// Init initializes the HTTP client
func Init() {
	httpClient = newClient()
}

func newClient() *resty.Client {
	c := resty.New()

	c.SetBaseURL(config.GetString("api.base_url"))
	c.SetTimeout(time.Duration(config.GetInt("api.timeout")) * time.Second)
	c.SetHeader("User-Agent", userAgent)
	c.SetHeader("Accept", "application/json")

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		requestID := uuid.NewString()
		req.SetHeader("X-Request-ID", requestID)
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL, "request_id", requestID)
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response",
			"status", resp.StatusCode(),
			"request_id", resp.Request.Header.Get("X-Request-ID"),
			"elapsed", resp.Time())
		return nil
	})

	return c
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sets the authorization token
func SetAuthToken(token string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetAuthToken(token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	// Re-init the client to clear auth headers
	httpClient = newClient()
}
