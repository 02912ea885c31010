package extension

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type testExtension struct {
	name  string
	tools []MCPTool
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return e.tools }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() { Register(testExtension{name: name}) })
}

func TestRegistry_OrderAndTools(t *testing.T) {
	noop := func(context.Context, Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) { return nil, nil }
	Register(testExtension{name: "test-order-a", tools: []MCPTool{{Tool: mcp.NewTool("a_tool"), Handler: noop}}})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	ia, ib := indexOf(names, "test-order-a"), indexOf(names, "test-order-b")
	assert.GreaterOrEqual(t, ia, 0)
	assert.Greater(t, ib, ia)
	assert.NotNil(t, Get("test-order-a"))
	assert.Nil(t, Get("missing"))

	var found bool
	for _, tool := range Tools() {
		if tool.Tool.Name == "a_tool" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewContext(t *testing.T) {
	c := NewContext(Deps{})
	assert.Nil(t, c.Service())
	assert.Nil(t, c.DB())
	assert.Nil(t, c.Finder())
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
