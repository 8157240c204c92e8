package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
)

// vocabulary is what the entity rules accept for field and relationship types.
type vocabulary struct {
	FieldTypes        []string `json:"field_types"`
	RelationshipTypes []string `json:"relationship_types"`
	EntityNamespace   string   `json:"entity_namespace"`
	ServiceNamespace  string   `json:"service_namespace"`
}

// registerResources registers all moqlint MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	// 1. moqlint://rules - complete rule catalog
	s.AddResource(
		mcplib.NewResource(
			"moqlint://rules",
			"Rule Catalog",
			mcplib.WithResourceDescription("Every entity and service rule with its severity"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonContents(request.Params.URI, rules.Infos(domain.DialectAuto))
		},
	)

	// 2. moqlint://field-types - accepted type vocabulary
	s.AddResource(
		mcplib.NewResource(
			"moqlint://field-types",
			"Field Types",
			mcplib.WithResourceDescription("Recognized entity field types, relationship types and schema locations"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonContents(request.Params.URI, vocabulary{
				FieldTypes:        rules.FieldTypes,
				RelationshipTypes: rules.RelationshipTypes,
				EntityNamespace:   rules.EntityNamespace,
				ServiceNamespace:  rules.ServiceNamespace,
			})
		},
	)

	// 3. moqlint://rules/{dialect} - one dialect's catalog (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"moqlint://rules/{dialect}",
			"Dialect Rules",
			mcplib.WithTemplateDescription("Rule catalog of the entity or service dialect"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleDialectRules,
	)
}

func handleDialectRules(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	name := dialectFromArguments(request.Params.Arguments["dialect"])
	dialect, err := domain.ParseDialect(name)
	if err != nil {
		return nil, err
	}
	return jsonContents(request.Params.URI, rules.Infos(dialect))
}

// dialectFromArguments accepts both plain strings and the []string form used
// by template matching.
func dialectFromArguments(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
