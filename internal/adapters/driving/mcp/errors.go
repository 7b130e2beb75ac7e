// Package mcp provides an MCP (Model Context Protocol) server adapter for CyberX.
// It lets AI assistants question the knowledge base built by one pipeline run.
package mcp

import "errors"

var (
	// ErrMissingSession is returned when the session port is not provided.
	ErrMissingSession = errors.New("mcp: session is required")

	// ErrEmptyQuestion is returned by the ask tool for a blank question.
	ErrEmptyQuestion = errors.New("mcp: question is required")

	// ErrSessionEnded is returned when a termination keyword is sent to ask.
	ErrSessionEnded = errors.New("mcp: termination keywords end the session; stop the server instead")
)
