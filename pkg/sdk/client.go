package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/mcp-go/client"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// SupportedSchemaMajor is the server schema major version this client speaks.
const SupportedSchemaMajor = "1"

const schemaURI = "stackaudit://schema"

type options struct {
	timeout      time.Duration
	maxAttempts  int
	initialDelay time.Duration
}

// Option configures the client.
type Option func(*options)

// WithTimeout sets the per-call timeout. Large projects take a while to
// evaluate, so the default is generous.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRetry configures how often a failed transport call is retried.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(o *options) {
		o.maxAttempts = maxAttempts
		o.initialDelay = initialDelay
	}
}

// Client is a typed client for the StackAudit MCP server.
type Client struct {
	mcp      *client.Client
	retryCfg retry.Config
}

// NewClient creates a client over the given MCP transport.
func NewClient(transport client.Transport, opts ...Option) *Client {
	o := options{
		timeout:      2 * time.Minute,
		maxAttempts:  3,
		initialDelay: 500 * time.Millisecond,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return &Client{
		mcp: client.New(transport, client.WithTimeout(o.timeout)),
		retryCfg: retry.Config{
			MaxAttempts:   o.maxAttempts,
			InitialDelay:  o.initialDelay,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Initialize performs the MCP initialize handshake.
func (c *Client) Initialize(ctx context.Context) (*client.ServerInfo, error) {
	return c.mcp.Initialize(ctx)
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.mcp.Close()
}

func (c *Client) call(ctx context.Context, tool string, args map[string]any) (*client.ToolResult, error) {
	r := retry.New[*client.ToolResult](c.retryCfg)
	result, err := r.Do(ctx, func(ctx context.Context) (*client.ToolResult, error) {
		return c.mcp.CallTool(ctx, tool, args)
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", tool, err)
	}
	if result.IsError {
		msg := ""
		if len(result.Content) > 0 {
			msg = result.Content[0].Text
		}
		return nil, &ToolError{Tool: tool, Message: msg}
	}
	return result, nil
}

func unmarshalText[T any](result *client.ToolResult) (*T, error) {
	text, err := textResult(result)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &v, nil
}

func textResult(result *client.ToolResult) (string, error) {
	if len(result.Content) == 0 {
		return "", ErrNoContent
	}
	return result.Content[0].Text, nil
}

func pathArgs(path string) map[string]any {
	args := map[string]any{}
	if path != "" {
		args["path"] = path
	}
	return args
}

// GetSchema reads the schema resource from the server.
func (c *Client) GetSchema(ctx context.Context) (*SchemaInfo, error) {
	rc, err := c.mcp.ReadResource(ctx, schemaURI)
	if err != nil {
		return nil, fmt.Errorf("read schema resource: %w", err)
	}
	var info SchemaInfo
	if err := json.Unmarshal([]byte(rc.Text), &info); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return &info, nil
}

// Compatible returns nil when the server schema major version matches
// SupportedSchemaMajor.
func (c *Client) Compatible(ctx context.Context) error {
	info, err := c.GetSchema(ctx)
	if err != nil {
		return fmt.Errorf("check compatibility: %w", err)
	}
	if major := majorVersion(info.SchemaVersion); major != SupportedSchemaMajor {
		return fmt.Errorf("incompatible schema: server=%s (major %s), client supports major %s",
			info.SchemaVersion, major, SupportedSchemaMajor)
	}
	return nil
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(v, ".")
	return major
}

// Evaluate runs an evaluation and returns the condensed summary.
func (c *Client) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error) {
	args := pathArgs(req.Path)
	if req.SaveReport {
		args["save_report"] = true
	}
	res, err := c.call(ctx, "stackaudit_evaluate", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[EvaluateResult](res)
}

// Report runs an evaluation and returns the full record.
func (c *Client) Report(ctx context.Context, path string) (*evaluation.Record, error) {
	res, err := c.call(ctx, "stackaudit_get_report", pathArgs(path))
	if err != nil {
		return nil, err
	}
	return unmarshalText[evaluation.Record](res)
}

// FeatureStatus runs an evaluation and returns the classification of one
// catalog category.
func (c *Client) FeatureStatus(ctx context.Context, category catalog.Category, path string) (*evaluation.CategoryStatus, error) {
	args := pathArgs(path)
	args["category"] = string(category)
	res, err := c.call(ctx, "stackaudit_get_feature_status", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[evaluation.CategoryStatus](res)
}

// Catalog returns the requirement catalog the server evaluates against.
func (c *Client) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	res, err := c.call(ctx, "stackaudit_get_catalog", nil)
	if err != nil {
		return nil, err
	}
	return unmarshalText[catalog.Catalog](res)
}
