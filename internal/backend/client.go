package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	connectPath = "/conectar"
	queryPath   = "/query"
	previewPath = "/preview"
)

// Client talks to the query backend over JSON/HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend origin. A zero timeout
// waits until the transport resolves.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Connect validates the credentials and lists databases
func (c *Client) Connect(ctx context.Context, creds Credentials) (ConnectReply, error) {
	var wire connectWire
	if err := c.post(ctx, OpConnect, connectPath, creds, &wire); err != nil {
		return nil, err
	}
	if !*wire.Success {
		return Failure{Error: wire.Error}, nil
	}
	dbs := wire.Bancos
	if dbs == nil {
		dbs = []string{}
	}
	return Connected{Databases: dbs}, nil
}

// Query runs the query without preview limits
func (c *Client) Query(ctx context.Context, req QueryRequest) (QueryReply, error) {
	return c.runQuery(ctx, OpQuery, queryPath, req)
}

// Preview runs the query under the backend's preview policy
func (c *Client) Preview(ctx context.Context, req QueryRequest) (QueryReply, error) {
	return c.runQuery(ctx, OpPreview, previewPath, req)
}

func (c *Client) runQuery(ctx context.Context, op Op, path string, req QueryRequest) (QueryReply, error) {
	var wire queryWire
	if err := c.post(ctx, op, path, req, &wire); err != nil {
		return nil, err
	}
	if !*wire.Success {
		return Failure{Error: wire.Error}, nil
	}
	rs := &ResultSet{Columns: wire.Columns, Rows: wire.Rows}
	if wire.Message != nil {
		rs.Message = *wire.Message
	}
	return rs, nil
}

// successField lets post inspect the shared success/error envelope
type successField interface {
	envelope() (success *bool, errText string)
}

func (w *connectWire) envelope() (*bool, string) { return w.Success, w.Error }
func (w *queryWire) envelope() (*bool, string)   { return w.Success, w.Error }

// post sends body as JSON and decodes the reply into out. Only transport
// problems are returned as errors; success:false is left in out.
func (c *Client) post(ctx context.Context, op Op, path string, body any, out successField) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return WrapTransportError(op, fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return WrapTransportError(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.Printf("backend: POST %s", path)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return WrapTransportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return WrapTransportError(op, fmt.Errorf("read reply: %w", err))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	decodeErr := dec.Decode(out)
	success, errText := out.envelope()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Some deployments answer application failures with 4xx/5xx
		if decodeErr == nil && success != nil && !*success && errText != "" {
			return nil
		}
		return WrapTransportError(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return WrapTransportError(op, fmt.Errorf("decode reply: %w", decodeErr))
	}
	if success == nil {
		return WrapTransportError(op, fmt.Errorf("malformed reply: missing success"))
	}
	return nil
}
