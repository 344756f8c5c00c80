// Package erp provides a JSON-RPC client for the record system used by the
// reporting operations. Sessions are explicit objects; there is no shared
// authentication state.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config locates the record system and the credentials for it.
type Config struct {
	URL      string
	Database string
	Username string
	APIKey   string
}

// Client issues JSON-RPC calls against the record system's /jsonrpc
// endpoint. It holds no session state.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets a 30 second default.
func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{config: config, httpClient: httpClient}
}

// Session is an authenticated handle. It is created by Authenticate and
// passed explicitly into every call that needs it.
type Session struct {
	UID    int
	client *Client
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e *rpcError) Error() string {
	if e.Data.Message != "" {
		return fmt.Sprintf("rpc error %d: %s", e.Code, e.Data.Message)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call posts one JSON-RPC request and decodes the result into out.
func (c *Client) call(ctx context.Context, service, method string, args []any, out any) error {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      uuid.NewString(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode rpc request: %w", err)
	}

	endpoint := strings.TrimRight(c.config.URL, "/") + "/jsonrpc"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read rpc response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc call returned status %d", resp.StatusCode)
	}

	var decoded rpcResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("unparseable rpc response: %w", err)
	}
	if decoded.Error != nil {
		return decoded.Error
	}
	if out != nil {
		if err := json.Unmarshal(decoded.Result, out); err != nil {
			return fmt.Errorf("unexpected rpc result shape: %w", err)
		}
	}
	return nil
}

// Authenticate verifies the configured credentials and returns a session.
func (c *Client) Authenticate(ctx context.Context) (*Session, error) {
	var uid int
	args := []any{c.config.Database, c.config.Username, c.config.APIKey, map[string]any{}}
	if err := c.call(ctx, "common", "authenticate", args, &uid); err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if uid == 0 {
		return nil, fmt.Errorf("authentication rejected for %s", c.config.Username)
	}
	return &Session{UID: uid, client: c}, nil
}

// ExecuteKw invokes a model method through the object service. The result
// is decoded into out when out is non-nil.
func (s *Session) ExecuteKw(ctx context.Context, model, method string, args []any, options map[string]any, out any) error {
	if options == nil {
		options = map[string]any{}
	}
	c := s.client.config
	callArgs := []any{c.Database, s.UID, c.APIKey, model, method, args, options}
	return s.client.call(ctx, "object", "execute_kw", callArgs, out)
}
