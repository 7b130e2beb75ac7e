package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for CyberX resources.
	uriScheme = "cyberx://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the predefined questions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "questions",
		Name:        "questions",
		Description: "Predefined Brainstorm & Analysis questions",
		MIMEType:    "application/json",
	}, s.handleQuestionsResource)

	// Template for a single knowledge base entry.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "entries/{index}",
		Name:        "knowledge-entry",
		Description: "One knowledge base entry by its 1-based index",
		MIMEType:    "application/json",
	}, s.handleEntryResource)
}

// handleQuestionsResource returns the predefined questions.
func (s *Server) handleQuestionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Session.Examples())
}

// handleEntryResource returns one knowledge base entry.
func (s *Server) handleEntryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	index, ok := extractEntryIndex(req.Params.URI)
	if !ok || index > len(s.ports.Entries) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, s.ports.Entries[index-1])
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractEntryIndex extracts the index from a URI like cyberx://entries/{index}.
func extractEntryIndex(uri string) (int, bool) {
	const prefix = uriScheme + "entries/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	index, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}
