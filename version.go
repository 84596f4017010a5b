package batuta

// Version is the engine release version, stamped into the CLI and the
// MCP server identity.
const Version = "0.3.0"
