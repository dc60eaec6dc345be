package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/logging"
)

// Client talks to the headless CMS GraphQL endpoint.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *logging.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// Query posts a GraphQL document and decodes the data payload into out.
// GraphQL-level errors are surfaced as content errors, not ignored.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := sonic.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(errors.KindContent, "cms.query", "failed to encode query", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(errors.KindContent, "cms.query", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.KindContent, "cms.query", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.KindContent, "cms.query", "failed to read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.KindContent, "cms.query", fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var gr graphqlResponse
	if err := sonic.Unmarshal(body, &gr); err != nil {
		return errors.Wrap(errors.KindContent, "cms.query", "failed to parse response", err)
	}
	if len(gr.Errors) > 0 {
		return errors.New(errors.KindContent, "cms.query", "graphql error: "+gr.Errors[0].Message)
	}
	if out != nil {
		if err := sonic.Unmarshal(gr.Data, out); err != nil {
			return errors.Wrap(errors.KindContent, "cms.query", "failed to decode data", err)
		}
	}
	return nil
}
