package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the threat intelligence question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	// Diagnostic explains a fallback answer, e.g. "[RAG Error] ... Fallback answer."
	Diagnostic string `json:"diagnostic,omitempty"`
}

// KnowledgeBaseInput is the (empty) input schema for the knowledge_base tool.
type KnowledgeBaseInput struct{}

// KnowledgeBaseOutput is the output schema for the knowledge_base tool.
type KnowledgeBaseOutput struct {
	Entries []domain.KnowledgeEntry `json:"entries"`
	Count   int                     `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "ask",
		Description: "Ask a question about the collected threat intelligence. " +
			"Predefined questions are answered directly; others are answered " +
			"from the knowledge base.",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "knowledge_base",
		Description: "List the knowledge base entries built for this run",
	}, s.handleKnowledgeBase)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, AskOutput{}, ErrEmptyQuestion
	}
	if domain.IsTerminationKeyword(question) {
		return nil, AskOutput{}, ErrSessionEnded
	}

	answer, err := s.ports.Session.Ask(ctx, question)
	out := AskOutput{Question: question, Answer: answer}
	if err != nil {
		out.Diagnostic = domain.FallbackNotice(err)
	}
	return nil, out, nil
}

// handleKnowledgeBase handles the knowledge_base tool invocation.
func (s *Server) handleKnowledgeBase(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ KnowledgeBaseInput,
) (*mcp.CallToolResult, KnowledgeBaseOutput, error) {
	entries := make([]domain.KnowledgeEntry, len(s.ports.Entries))
	copy(entries, s.ports.Entries)
	return nil, KnowledgeBaseOutput{Entries: entries, Count: len(entries)}, nil
}
