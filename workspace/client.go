package workspace

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	uuid "github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"gopkg.in/resty.v1"
)

// ErrClientConfig is returned by NewClient when the endpoint or token is
// missing.
var ErrClientConfig = errors.New("'config.kbase-endpoint' and 'context.token' are required by the DataFetcher")

const (
	workspaceService = "Workspace"
	sampleService    = "SampleService"
)

// Client makes JSON-RPC 1.1 calls to the workspace and sample services of a
// KBase deployment.
type Client struct {
	endpoint string
	token    string
	http     *resty.Client
}

// NewClient gets a Client for the deployment whose services live under
// endpoint, e.g. "https://appdev.kbase.us/services/".
func NewClient(endpoint, token string) (*Client, error) {
	if endpoint == "" || token == "" {
		return nil, ErrClientConfig
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http:     resty.New().SetTimeout(5 * time.Minute),
	}, nil
}

func (c *Client) serviceURL(service string) string {
	switch service {
	case workspaceService:
		return c.endpoint + "/ws"
	default:
		return c.endpoint + "/" + strings.ToLower(service)
	}
}

type rpcRequest struct {
	Method  string        `json:"method"`
	ID      string        `json:"id"`
	Params  []interface{} `json:"params"`
	Version string        `json:"version"`
}

type rpcResponse struct {
	Result []json.RawMessage `json:"result"`
	Error  json.RawMessage   `json:"error"`
}

// call invokes service.method with a single params struct and decodes the
// first element of the result list into result.
func (c *Client) call(ctx context.Context, service, method string, params, result interface{}) error {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return errors.Wrap(err, "generating request id")
	}
	req := rpcRequest{
		Method:  service + "." + method,
		ID:      id,
		Params:  []interface{}{params},
		Version: "1.1",
	}
	url := c.serviceURL(service)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(url)
	if err != nil {
		return errors.Wrapf(err, "calling %s", req.Method)
	}

	var rr rpcResponse
	if err := json.Unmarshal(resp.Body(), &rr); err != nil {
		return errors.Errorf("%s '%s' (HTTP Status: %d) - unable to parse response: %v", req.Method, url, resp.StatusCode(), err)
	}
	if len(rr.Error) > 0 && string(rr.Error) != "null" {
		return errors.Errorf("Error from %s - %s", service, rr.Error)
	}
	if len(rr.Result) == 0 {
		return errors.Errorf("%s returned an empty result", req.Method)
	}
	return errors.Wrapf(json.Unmarshal(rr.Result[0], result), "decoding %s result", req.Method)
}
