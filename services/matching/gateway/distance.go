package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	httpclient "github.com/piresc/roadassist/internal/pkg/http"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/pkg/retry"
)

var errNoRoute = errors.New("no route between the points")

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// OSRMDistance asks an OSRM compatible routing service for driving distances
type OSRMDistance struct {
	client *httpclient.Client
}

// NewOSRMDistance creates a distance provider for the configured routing service
func NewOSRMDistance(cfg models.MatchingConfig, log *logger.ZapLogger) *OSRMDistance {
	return &OSRMDistance{
		client: httpclient.NewClient("osrm", cfg.DistanceURL, cfg.DistanceTimeout, log).
			WithRetrier(retry.New(retry.Config{MaxRetries: 1, BaseDelay: 50 * time.Millisecond, MaxDelay: 100 * time.Millisecond}, log)),
	}
}

// Distance returns the driving distance in meters
func (d *OSRMDistance) Distance(ctx context.Context, from, to models.Location) (float64, error) {
	path := fmt.Sprintf("/route/v1/driving/%s,%s;%s,%s?overview=false",
		coord(from.Longitude), coord(from.Latitude),
		coord(to.Longitude), coord(to.Latitude))

	var resp osrmResponse
	if err := d.client.DoJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to get route: %w", err)
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return 0, fmt.Errorf("%w: %s", errNoRoute, resp.Code)
	}
	return resp.Routes[0].Distance, nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
