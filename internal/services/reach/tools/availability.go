package tools

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aviato/internal/services/reach/app"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
)

// AvailabilitySetInput represents the MCP tool input for activating a mode.
type AvailabilitySetInput struct {
	Mode         string `json:"mode" jsonschema:"mode to activate: green, blue, yellow, orange, red, gray, brown or invisible"`
	OpenDate     string `json:"open_date,omitempty" jsonschema:"blue: RFC3339 timestamp or YYYY-MM-DD when messaging opens"`
	LaterMinutes int    `json:"later_minutes,omitempty" jsonschema:"yellow: window length in minutes"`
	MaxContact   int    `json:"max_contact,omitempty" jsonschema:"orange: number of conversations accepted"`
	TimedAt      string `json:"timed_at,omitempty" jsonschema:"brown: local HH:MM when messaging opens each day"`
}

// ModeResult is the tool view of how a user's availability reads now.
type ModeResult struct {
	UserID     string `json:"user_id" jsonschema:"user identifier"`
	Mode       string `json:"mode" jsonschema:"displayed mode"`
	Label      string `json:"label" jsonschema:"localized mode label"`
	Color      string `json:"color" jsonschema:"hex color of the mode"`
	CanMessage bool   `json:"can_message" jsonschema:"whether new conversations are accepted"`
	StatusText string `json:"status_text" jsonschema:"localized status line"`
	Reason     string `json:"reason,omitempty" jsonschema:"machine-readable cause of the status"`
	Summary    string `json:"summary,omitempty" jsonschema:"one-line description of the settings"`
}

func modeResult(v app.ModeView) ModeResult {
	return ModeResult{
		UserID:     v.UserID,
		Mode:       v.DisplayMode.String(),
		Label:      v.Label,
		Color:      v.Color,
		CanMessage: v.CanMessage,
		StatusText: v.StatusText,
		Reason:     string(v.Reason),
		Summary:    v.Summary,
	}
}

// AvailabilitySetTool defines the MCP tool schema for activating a mode.
func AvailabilitySetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "availability_set",
		Description: "Activates an availability mode for the logged-in user. Omitted settings use the mode defaults.",
	}
}

// AvailabilitySet executes a mode activation.
func (h *Handlers) AvailabilitySet() mcp.ToolHandlerFor[AvailabilitySetInput, ModeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AvailabilitySetInput) (*mcp.CallToolResult, ModeResult, error) {
		mode, err := availability.ParseMode(input.Mode)
		if err != nil {
			return nil, ModeResult{}, h.toolError("availability set", err)
		}
		settings, err := settingsFromInput(mode, input)
		if err != nil {
			return nil, ModeResult{}, h.toolError("availability set", err)
		}
		u, err := h.session.SetAvailabilityMode(ctx, mode, settings)
		if err != nil {
			return nil, ModeResult{}, h.toolError("availability set", err)
		}
		return nil, modeResult(h.session.CurrentMode(u.ID)), nil
	}
}

// AvailabilityDeactivateTool defines the MCP tool schema for turning a mode off.
func AvailabilityDeactivateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "availability_deactivate",
		Description: "Turns the logged-in user's mode off, leaving them invisible.",
	}
}

// AvailabilityDeactivate executes a mode deactivation.
func (h *Handlers) AvailabilityDeactivate() mcp.ToolHandlerFor[EmptyInput, ModeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, ModeResult, error) {
		u, err := h.session.DeactivateAvailability(ctx)
		if err != nil {
			return nil, ModeResult{}, h.toolError("availability deactivate", err)
		}
		return nil, modeResult(h.session.CurrentMode(u.ID)), nil
	}
}

// AvailabilityGetInput represents the MCP tool input for reading a mode.
type AvailabilityGetInput struct {
	UserID string `json:"user_id" jsonschema:"user identifier"`
}

// AvailabilityGetTool defines the MCP tool schema for reading a mode.
func AvailabilityGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "availability_get",
		Description: "Evaluates a user's availability now. Unknown users read as gray and unreachable.",
	}
}

// AvailabilityGet executes an availability read.
func (h *Handlers) AvailabilityGet() mcp.ToolHandlerFor[AvailabilityGetInput, ModeResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AvailabilityGetInput) (*mcp.CallToolResult, ModeResult, error) {
		return nil, modeResult(h.session.CurrentMode(input.UserID)), nil
	}
}

// settingsFromInput builds the settings variant for mode. It returns nil
// when no setting was given so the mode defaults apply.
func settingsFromInput(mode availability.Mode, input AvailabilitySetInput) (availability.Settings, error) {
	switch mode {
	case availability.ModeBlue:
		raw := strings.TrimSpace(input.OpenDate)
		if raw == "" {
			return nil, nil
		}
		opens, err := parseDate(raw)
		if err != nil {
			return nil, availability.ErrInvalidSettings.WithMetadata(map[string]string{"Mode": mode.Label(), "Reason": "open date must be RFC3339 or YYYY-MM-DD"})
		}
		return availability.OpenSettings{OpenDate: &opens}, nil
	case availability.ModeYellow:
		if input.LaterMinutes == 0 {
			return nil, nil
		}
		return availability.LaterSettings{Minutes: input.LaterMinutes}, nil
	case availability.ModeOrange:
		if input.MaxContact == 0 {
			return nil, nil
		}
		return availability.MaxContactSettings{Max: input.MaxContact}, nil
	case availability.ModeBrown:
		raw := strings.TrimSpace(input.TimedAt)
		if raw == "" {
			return nil, nil
		}
		at, err := time.Parse("15:04", raw)
		if err != nil {
			return nil, availability.ErrInvalidSettings.WithMetadata(map[string]string{"Mode": mode.Label(), "Reason": "time must be HH:MM"})
		}
		return availability.TimedSettings{Hour: at.Hour(), Minute: at.Minute()}, nil
	default:
		return nil, nil
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
