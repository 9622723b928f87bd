package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/stackaudit/pkg/application"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
	"github.com/felixgeelhaar/stackaudit/pkg/storage"
)

type Server struct {
	mcpServer *mcp.Server
	svc       *application.EvaluationService
	root      string
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// NewServer exposes svc over MCP. Relative project paths are resolved
// against root.
func NewServer(root string, svc *application.EvaluationService) *Server {
	info := mcp.ServerInfo{
		Name:    "stackaudit",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("StackAudit MCP Server"),
			mcp.WithDescription("StackAudit evaluates a project against the Armonia requirement catalog without modifying it."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use stackaudit_evaluate for a summary, stackaudit_get_report for the full record, and stackaudit_get_catalog for the requirements."),
		),
		svc:  svc,
		root: root,
	}

	s.registerTools()
	s.registerSchemaResource()
	return s
}

type EvaluateArgs struct {
	Path       string `json:"path,omitempty" jsonschema:"description=Project directory to evaluate (defaults to the server root)"`
	SaveReport bool   `json:"save_report,omitempty" jsonschema:"description=Write the JSON report into the project root"`
}

type ReportArgs struct {
	Path string `json:"path,omitempty" jsonschema:"description=Project directory to evaluate (defaults to the server root)"`
}

type FeatureArgs struct {
	Category string `json:"category" jsonschema:"description=Catalog category, e.g. admin_panel"`
	Path     string `json:"path,omitempty" jsonschema:"description=Project directory to evaluate (defaults to the server root)"`
}

// EvaluateResponse is the condensed result of stackaudit_evaluate.
type EvaluateResponse struct {
	ProjectID  string             `json:"project_id"`
	Summary    evaluation.Summary `json:"summary"`
	ReportFile string             `json:"report_file,omitempty"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("stackaudit_evaluate").
		Description("Evaluate a project and return the overall compliance, critical issues and next steps").
		Handler(s.handleEvaluate)

	s.mcpServer.Tool("stackaudit_get_report").
		Description("Evaluate a project and return the full evaluation record").
		Handler(s.handleGetReport)

	s.mcpServer.Tool("stackaudit_get_feature_status").
		Description("Evaluate a project and return the feature classification of one catalog category").
		Handler(s.handleGetFeatureStatus)

	s.mcpServer.Tool("stackaudit_get_catalog").
		Description("Return the requirement catalog used for evaluations").
		Handler(s.handleGetCatalog)
}

func (s *Server) resolve(path string) string {
	if path == "" {
		return s.root
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

func (s *Server) evaluate(ctx context.Context, path string) (*application.Result, error) {
	res, err := s.svc.Evaluate(ctx, s.resolve(path))
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Failed to evaluate project: %v", err))
	}
	return res, nil
}

func (s *Server) handleEvaluate(ctx context.Context, args EvaluateArgs) (any, error) {
	res, err := s.evaluate(ctx, args.Path)
	if err != nil {
		return nil, err
	}

	resp := EvaluateResponse{
		ProjectID: res.Record.Metadata.ProjectID,
		Summary:   res.Summary,
	}
	if args.SaveReport {
		path, err := s.svc.SaveReport(ctx, res, storage.DefaultReportFile)
		if err != nil {
			return nil, mcpErr("Failed to write the report file.")
		}
		resp.ReportFile = path
	}
	return resp, nil
}

func (s *Server) handleGetReport(ctx context.Context, args ReportArgs) (any, error) {
	res, err := s.evaluate(ctx, args.Path)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

func (s *Server) handleGetFeatureStatus(ctx context.Context, args FeatureArgs) (any, error) {
	category := catalog.Category(args.Category)
	if _, ok := s.svc.Catalog().Category(category); !ok {
		return nil, mcpErr(fmt.Sprintf("Unknown category %q.", args.Category))
	}
	res, err := s.evaluate(ctx, args.Path)
	if err != nil {
		return nil, err
	}
	return res.Record.Features[category], nil
}

func (s *Server) handleGetCatalog(ctx context.Context, args struct{}) (any, error) {
	return s.svc.Catalog(), nil
}

// ServeStdio serves MCP over stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP serves MCP over HTTP on addr.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
