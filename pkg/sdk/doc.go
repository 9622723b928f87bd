// Package sdk provides a typed Go client for the StackAudit MCP server.
//
// The client wraps mcp-go/client.CallTool with one method per tool and
// retries transport failures via fortify. Tool errors are not retried.
//
// Usage:
//
//	transport, _ := client.NewStdioTransport("stackaudit", "mcp", "./app")
//	c := sdk.NewClient(transport)
//	defer c.Close()
//
//	_, _ = c.Initialize(ctx)
//	res, _ := c.Evaluate(ctx, sdk.EvaluateRequest{})
//	fmt.Printf("%.1f%%\n", res.Summary.OverallCompliance)
package sdk
