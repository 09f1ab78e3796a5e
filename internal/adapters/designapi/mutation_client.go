package designapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/ports/secondary"
)

// MutationClient implements secondary.MutationOracle against the design
// tool's node API.
type MutationClient struct {
	client *Client
}

// NewMutationClient creates a mutation oracle client.
func NewMutationClient(baseURL string) *MutationClient {
	return &MutationClient{client: NewClient(baseURL)}
}

type nodePayload struct {
	Properties map[string]any `json:"properties"`
}

// Inspect returns the node's current properties.
func (c *MutationClient) Inspect(ctx context.Context, nodeID string) (map[string]any, error) {
	return c.nodeRequest(ctx, http.MethodGet, nodeID, nil)
}

// Mutate applies a property patch and returns the resulting node state.
func (c *MutationClient) Mutate(ctx context.Context, nodeID string, patch map[string]any) (map[string]any, error) {
	return c.nodeRequest(ctx, http.MethodPatch, nodeID, nodePayload{Properties: patch})
}

func (c *MutationClient) nodeRequest(ctx context.Context, method, nodeID string, body any) (map[string]any, error) {
	path := "/v1/nodes/" + url.PathEscape(nodeID)

	status, payload, err := c.client.doJSON(ctx, method, path, body)
	if err != nil {
		return nil, faults.Newf(faults.CodeUnavailable, "design api unreachable: %v", err).WithIDs(nodeID)
	}

	switch {
	case status == http.StatusOK:
		var node nodePayload
		if err := json.Unmarshal(payload, &node); err != nil {
			return nil, fmt.Errorf("failed to decode node response: %w", err)
		}
		return node.Properties, nil
	case status == http.StatusNotFound:
		return nil, faults.Newf(faults.CodeNotFound, "node %s no longer exists", nodeID).WithIDs(nodeID)
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return nil, faults.Newf(faults.CodePermission, "no write access to node %s", nodeID).WithIDs(nodeID)
	default:
		return nil, faults.Newf(faults.CodeUnavailable, "design api returned status %d", status).WithIDs(nodeID)
	}
}

// Ensure MutationClient implements the interface
var _ secondary.MutationOracle = (*MutationClient)(nil)
