// flags.go defines constants for CLI flag names shared between flag
// definitions and GetX calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

const (
	// Boolean flags

	FlagAll           = "all"            // Include deleted buffers
	FlagDeleted       = "deleted"        // Only deleted buffers
	FlagDiff          = "diff"           // Show diff output
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagFlat          = "flat"           // Flatten directory structure
	FlagIncludeHidden = "include-hidden" // Include hidden files/directories
	FlagLocal         = "local"          // Use local scope
	FlagLong          = "long"           // Long format output
	FlagNumber        = "number"         // Number output lines
	FlagRecursive     = "recursive"      // Recursive operation
	FlagReverse       = "reverse"        // Reverse sort order
	FlagTree          = "tree"           // Tree view output

	// String flags

	FlagCursor    = "cursor"     // Cursor position (L:C)
	FlagFile      = "file"       // Read content from a file
	FlagGlob      = "glob"       // Glob filter
	FlagLines     = "lines"      // Line range (e.g., "10:20")
	FlagOlderThan = "older-than" // Duration threshold
	FlagPath      = "path"       // Path prefix filter
	FlagPrefix    = "prefix"     // Target path prefix
	FlagSelect    = "select"     // Selection range (L:C-L:C)
	FlagSort      = "sort"       // Sort field
	FlagVersions  = "versions"   // Version range (e.g., "3:5")
	FlagView      = "view"       // Editor view mode

	// Integer flags

	FlagLimit   = "limit"   // Limit number of results
	FlagVersion = "version" // Specific version number
)
