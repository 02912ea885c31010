// resources.go implements MCP resource handlers.
//
// Buffer URIs follow textfinder://buffers/{path}[/v/{version}]; without a
// version the latest is returned, as "cat" does. textfinder://active
// returns the focused buffer.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	bufferPrefix = "textfinder://buffers/"
	activeURI    = "textfinder://active"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing buffer path in a resource URI.
	ErrEmptyPath = errors.New("empty buffer path")
)

// readBuffer handles textfinder://buffers/ requests.
func (h *handlers) readBuffer(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.host == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	uri := req.Params.URI
	path, version, err := parseBufferURI(uri)
	if err != nil {
		return nil, err
	}

	svc := h.host.Service
	var content string
	if version > 0 {
		doc, err := svc.Version(ctx, path, version)
		if err != nil {
			return nil, err
		}
		content = doc.Content
	} else {
		doc, err := svc.Resolve(ctx, path)
		if err != nil {
			return nil, err
		}
		content = doc.Content
	}
	return textContents(uri, content), nil
}

// readActive handles textfinder://active, reading the buffer the editor
// has focused.
func (h *handlers) readActive(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.host == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	sess, err := h.host.Workspace.Active(ctx)
	if err != nil {
		return nil, err
	}
	return textContents(req.Params.URI, sess.Buffer.Content()), nil
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: text},
	}
}

// parseBufferURI extracts path and version from a buffer URI.
func parseBufferURI(uri string) (path string, version int, err error) {
	if !strings.HasPrefix(uri, bufferPrefix) {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, bufferPrefix)
	if rest == "" {
		return "", 0, ErrEmptyPath
	}

	if idx := strings.LastIndex(rest, "/v/"); idx != -1 {
		path = rest[:idx]
		vStr := rest[idx+3:]
		v, err := strconv.Atoi(vStr)
		if err != nil {
			return "", 0, fmt.Errorf("%w: invalid version %s", ErrInvalidURI, vStr)
		}
		if path == "" {
			return "", 0, ErrEmptyPath
		}
		return path, v, nil
	}
	return rest, 0, nil
}
