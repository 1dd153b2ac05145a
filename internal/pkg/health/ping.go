package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	NodeID      string    `json:"node_id,omitempty"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// NewPingHandler answers with build information for the running node
func NewPingHandler(serviceName, version, nodeID string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	if version == "" {
		version = "development"
	}
	commit := os.Getenv("GIT_COMMIT")
	if commit == "" {
		commit = "unknown"
	}

	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, BuildInfo{
			Version:     version,
			GitCommit:   commit,
			ServiceName: serviceName,
			NodeID:      nodeID,
			GoVersion:   runtime.Version(),
			Hostname:    hostname,
			ServerTime:  time.Now().UTC(),
		})
	}
}
