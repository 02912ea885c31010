// tools_config.go implements MCP tools for the CLI configuration.
// Plugin settings have their own tools in the replace extension.
//
// A successful set reloads the running service's config so limits such
// as max_content apply without a restart.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/textfinder/internal/config"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles textfinder_config_get.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx unused
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_get", "get").Author(h.author(req)).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author(h.author(req)).Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author(h.author(req)).Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles textfinder_config_set.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx unused
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:config_set", "set").Author(h.author(req)).Detail("key", key).Detail("value", value)

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Set(key, value)
	}
	if err == nil {
		err = cfg.Save()
	}
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if h.host != nil {
		if err := h.host.Service.ReloadConfig(); err != nil {
			log.Event("mcp:config_set", "reload").Author(h.author(req)).Write(err)
			return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
