package designapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/ports/secondary"
)

// ScoreClient implements secondary.ScoreOracle against the compliance
// scoring service.
type ScoreClient struct {
	client *Client
}

// NewScoreClient creates a score oracle client.
func NewScoreClient(baseURL string) *ScoreClient {
	return &ScoreClient{client: NewClient(baseURL)}
}

type scoreRequest struct {
	ViolationIDs []string `json:"violationIds"`
	FixedIDs     []string `json:"fixedIds"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// Score returns the compliance score for the violation set, with the
// given subset assumed fixed.
func (c *ScoreClient) Score(ctx context.Context, projectID string, violationIDs, fixedIDs []string) (float64, error) {
	path := "/v1/projects/" + url.PathEscape(projectID) + "/score"

	status, payload, err := c.client.doJSON(ctx, http.MethodPost, path, scoreRequest{
		ViolationIDs: violationIDs,
		FixedIDs:     fixedIDs,
	})
	if err != nil {
		return 0, faults.Newf(faults.CodeScoreOracle, "score service unreachable: %v", err)
	}
	if status != http.StatusOK {
		return 0, faults.Newf(faults.CodeScoreOracle, "score service returned status %d", status)
	}

	var resp scoreResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return 0, faults.Newf(faults.CodeScoreOracle, "malformed score response: %v", err)
	}

	return resp.Score, nil
}

// Ensure ScoreClient implements the interface
var _ secondary.ScoreOracle = (*ScoreClient)(nil)
