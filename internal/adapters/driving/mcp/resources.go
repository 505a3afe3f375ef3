package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// statusURI is the resource listing the loop states.
const statusURI = "autoprofile://status"

// statusInfo is the JSON form of one loop status.
type statusInfo struct {
	Feature   string     `json:"feature"`
	State     string     `json:"state"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	LastTick  *time.Time `json:"last_tick,omitempty"`
	Ticks     int        `json:"ticks"`
	Failures  int        `json:"failures"`
	LastError string     `json:"last_error,omitempty"`
	Detail    string     `json:"detail,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         statusURI,
		Name:        "status",
		Description: "State of the picture rotation, bio clock and name clock loops",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleStatusResource returns the status of every loop.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	statuses := s.ports.Automation.Status()

	infos := make([]statusInfo, len(statuses))
	for i, st := range statuses {
		infos[i] = statusInfo{
			Feature:   st.Feature.String(),
			State:     st.State.String(),
			StartedAt: optionalTime(st.StartedAt),
			LastTick:  optionalTime(st.LastTick),
			Ticks:     st.Ticks,
			Failures:  st.Failures,
			LastError: st.LastError,
			Detail:    st.Detail,
		}
	}

	data, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
