package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// SchemaVersion is the current MCP tool schema version (semver).
const SchemaVersion = "1.0.0"

type schemaResponse struct {
	SchemaVersion         string `json:"schema_version"`
	ServerVersion         string `json:"server_version"`
	EvaluatorVersion      string `json:"evaluator_version"`
	SpecificationsVersion string `json:"specifications_version"`
}

func (s *Server) registerSchemaResource() {
	s.mcpServer.Resource("stackaudit://schema").
		Name("stackaudit://schema").
		Description("Tool schema and evaluator version info").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			data, err := schemaInfo()
			if err != nil {
				return nil, err
			}
			return &mcplib.ResourceContent{
				URI:      "stackaudit://schema",
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}

func schemaInfo() ([]byte, error) {
	return json.Marshal(schemaResponse{
		SchemaVersion:         SchemaVersion,
		ServerVersion:         Version,
		EvaluatorVersion:      evaluation.EvaluatorVersion,
		SpecificationsVersion: evaluation.SpecificationsVersion,
	})
}
