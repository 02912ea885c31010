// Package all imports the built-in textfinder extensions.
// Import this package to register every command and MCP tool.
package all

import (
	_ "github.com/jpl-au/textfinder/extension/core"
	_ "github.com/jpl-au/textfinder/extension/document"
	_ "github.com/jpl-au/textfinder/extension/editor"
	_ "github.com/jpl-au/textfinder/extension/finder"
	_ "github.com/jpl-au/textfinder/extension/replace"
)
