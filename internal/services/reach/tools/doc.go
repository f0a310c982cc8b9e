// Package tools exposes reach session operations as MCP tools and
// resources. Handlers translate tool input into session calls and render
// domain errors through the error catalog of the configured locale.
package tools
