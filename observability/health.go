package observability

import (
	"context"
	"strconv"
)

// HealthStatus represents the health state of a remote API.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes the health of a remote API as seen by a client.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthChecker is implemented by clients that can check their API.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// HealthFromStatus maps a health check's status code to a health state: 2xx and
// 3xx are up, 429 and 5xx are down and any other 4xx is degraded.
func HealthFromStatus(name string, status int) Health {
	h := Health{
		Name:    name,
		Details: map[string]string{"status_code": strconv.Itoa(status)},
	}
	switch {
	case status >= 200 && status < 400:
		h.Status = HealthStatusUp
	case status == 429 || status >= 500:
		h.Status = HealthStatusDown
	default:
		h.Status = HealthStatusDegraded
	}
	return h
}

// HealthFromError reports a health check that got no response.
func HealthFromError(name string, err error) Health {
	return Health{
		Name:    name,
		Status:  HealthStatusDown,
		Message: err.Error(),
		Details: map[string]string{"outcome": Outcome(err)},
	}
}
