package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SelectionsInput carries a set of interests.
type SelectionsInput struct {
	Selections []string `json:"selections" jsonschema:"interests, at most 5"`
}

// SelectionsResult reports the resulting interests.
type SelectionsResult struct {
	Selections []string `json:"selections" jsonschema:"current interests"`
}

// SearchSelectionsSetTool defines the MCP tool schema for search interests.
func SearchSelectionsSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_selections_set",
		Description: "Replaces the interests used to rank matches. An empty list falls back to the profile interests.",
	}
}

// SearchSelectionsSet replaces the search selections.
func (h *Handlers) SearchSelectionsSet() mcp.ToolHandlerFor[SelectionsInput, SelectionsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SelectionsInput) (*mcp.CallToolResult, SelectionsResult, error) {
		if len(input.Selections) == 0 {
			h.session.ClearSelections()
			return nil, SelectionsResult{Selections: []string{}}, nil
		}
		selections, err := h.session.SetSelections(input.Selections)
		if err != nil {
			return nil, SelectionsResult{}, h.toolError("search selections set", err)
		}
		return nil, SelectionsResult{Selections: selections}, nil
	}
}

// ProfileSelectionsUpdateTool defines the MCP tool schema for profile interests.
func ProfileSelectionsUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "profile_selections_update",
		Description: "Replaces the logged-in user's profile interests.",
	}
}

// ProfileSelectionsUpdate replaces the owner's profile interests.
func (h *Handlers) ProfileSelectionsUpdate() mcp.ToolHandlerFor[SelectionsInput, SelectionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SelectionsInput) (*mcp.CallToolResult, SelectionsResult, error) {
		u, err := h.session.UpdateSelections(ctx, input.Selections)
		if err != nil {
			return nil, SelectionsResult{}, h.toolError("profile selections update", err)
		}
		return nil, SelectionsResult{Selections: append([]string{}, u.Selections...)}, nil
	}
}

// MatchResult is one ranked user.
type MatchResult struct {
	User       UserResult `json:"user" jsonschema:"the ranked user"`
	Percentage int        `json:"percentage" jsonschema:"share of your interests they also picked"`
	Shared     []string   `json:"shared" jsonschema:"interests in common"`
	Mode       ModeResult `json:"mode" jsonschema:"their availability now"`
}

// MatchesResult lists ranked users.
type MatchesResult struct {
	Matches []MatchResult `json:"matches" jsonschema:"users, best match first"`
}

// MatchesFindTool defines the MCP tool schema for ranking users.
func MatchesFindTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "matches_find",
		Description: "Ranks other users by how many of your interests they share.",
	}
}

// MatchesFind ranks the directory against the owner's interests.
func (h *Handlers) MatchesFind() mcp.ToolHandlerFor[EmptyInput, MatchesResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, MatchesResult, error) {
		matches, err := h.session.FindMatches()
		if err != nil {
			return nil, MatchesResult{}, h.toolError("matches find", err)
		}
		out := MatchesResult{Matches: make([]MatchResult, 0, len(matches))}
		for _, m := range matches {
			out.Matches = append(out.Matches, MatchResult{
				User:       userResult(m.User),
				Percentage: m.Percentage,
				Shared:     append([]string{}, m.Shared...),
				Mode:       modeResult(m.Mode),
			})
		}
		return nil, out, nil
	}
}
