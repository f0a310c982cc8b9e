package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aviato/internal/services/reach/app"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
)

// UserResult is the tool view of a directory member.
type UserResult struct {
	ID             string   `json:"id" jsonschema:"user identifier"`
	Name           string   `json:"name" jsonschema:"display name"`
	Email          string   `json:"email,omitempty" jsonschema:"email address"`
	Bio            string   `json:"bio,omitempty" jsonschema:"short profile text"`
	Mode           string   `json:"mode" jsonschema:"declared availability mode"`
	ApprovalRating int      `json:"approval_rating" jsonschema:"approval percentage accumulated from conversation ratings"`
	ReviewRating   float64  `json:"review_rating" jsonschema:"average star review, one decimal"`
	ReviewCount    int      `json:"review_count" jsonschema:"number of star reviews"`
	Selections     []string `json:"selections" jsonschema:"profile interests"`
}

func userResult(u user.User) UserResult {
	selections := append([]string{}, u.Selections...)
	return UserResult{
		ID:             u.ID,
		Name:           u.DisplayName(),
		Email:          u.Email,
		Bio:            u.Bio,
		Mode:           u.Availability.Mode.String(),
		ApprovalRating: u.ApprovalRating,
		ReviewRating:   u.ReviewRating,
		ReviewCount:    u.ReviewCount,
		Selections:     selections,
	}
}

// LoginInput represents the MCP tool input for logging in.
type LoginInput struct {
	Name  string `json:"name,omitempty" jsonschema:"display name (defaults to You)"`
	Email string `json:"email,omitempty" jsonschema:"email address"`
}

// LoginTool defines the MCP tool schema for logging in.
func LoginTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "login",
		Description: "Logs the session owner in. A first login creates the owner in green mode.",
	}
}

// Login executes a login request.
func (h *Handlers) Login() mcp.ToolHandlerFor[LoginInput, UserResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LoginInput) (*mcp.CallToolResult, UserResult, error) {
		u, err := h.session.Login(ctx, app.LoginInput{Name: input.Name, Email: input.Email})
		if err != nil {
			return nil, UserResult{}, h.toolError("login", err)
		}
		return nil, userResult(u), nil
	}
}

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// AckResult acknowledges a tool call without a payload.
type AckResult struct {
	OK bool `json:"ok" jsonschema:"true when the call succeeded"`
}

// LogoutTool defines the MCP tool schema for logging out.
func LogoutTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "logout",
		Description: "Logs out, clears conversations and selections and removes saved state.",
	}
}

// Logout executes a logout request.
func (h *Handlers) Logout() mcp.ToolHandlerFor[EmptyInput, AckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, AckResult, error) {
		h.session.Logout(ctx)
		return nil, AckResult{OK: true}, nil
	}
}

// UserGetInput represents the MCP tool input for reading a user.
type UserGetInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"user identifier (defaults to the logged-in user)"`
}

// UserGetTool defines the MCP tool schema for reading a user.
func UserGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "user_get",
		Description: "Returns a directory member, or the logged-in user when no id is given.",
	}
}

// UserGet executes a user read.
func (h *Handlers) UserGet() mcp.ToolHandlerFor[UserGetInput, UserResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input UserGetInput) (*mcp.CallToolResult, UserResult, error) {
		if strings.TrimSpace(input.UserID) == "" {
			u, ok := h.session.CurrentUser()
			if !ok {
				return nil, UserResult{}, h.toolError("user get", app.ErrNotAuthenticated)
			}
			return nil, userResult(u), nil
		}
		u, err := h.session.User(input.UserID)
		if err != nil {
			return nil, UserResult{}, h.toolError("user get", err)
		}
		return nil, userResult(u), nil
	}
}

// UserListResult lists directory members.
type UserListResult struct {
	Users []UserResult `json:"users" jsonschema:"directory members"`
}

// UserListTool defines the MCP tool schema for listing users.
func UserListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "user_list",
		Description: "Lists every directory member.",
	}
}

// UserList executes a directory listing.
func (h *Handlers) UserList() mcp.ToolHandlerFor[EmptyInput, UserListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, UserListResult, error) {
		directory := h.session.Directory()
		out := UserListResult{Users: make([]UserResult, 0, len(directory))}
		for _, u := range directory {
			out.Users = append(out.Users, userResult(u))
		}
		return nil, out, nil
	}
}

// UserRegisterInput represents the MCP tool input for adding a user.
type UserRegisterInput struct {
	UserID     string   `json:"user_id" jsonschema:"unique user identifier"`
	Name       string   `json:"name,omitempty" jsonschema:"display name"`
	Email      string   `json:"email,omitempty" jsonschema:"email address"`
	Bio        string   `json:"bio,omitempty" jsonschema:"short profile text"`
	Mode       string   `json:"mode,omitempty" jsonschema:"initial availability mode with default settings"`
	Selections []string `json:"selections,omitempty" jsonschema:"profile interests (up to 5)"`
}

// UserRegisterTool defines the MCP tool schema for adding a user.
func UserRegisterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "user_register",
		Description: "Adds a member to the directory.",
	}
}

// UserRegister executes a directory registration.
func (h *Handlers) UserRegister() mcp.ToolHandlerFor[UserRegisterInput, UserResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UserRegisterInput) (*mcp.CallToolResult, UserResult, error) {
		mode, err := availability.ParseMode(input.Mode)
		if err != nil {
			return nil, UserResult{}, h.toolError("user register", err)
		}
		u := user.User{
			ID:           input.UserID,
			Name:         input.Name,
			Email:        input.Email,
			Bio:          input.Bio,
			Availability: availability.Availability{Mode: mode, Settings: availability.DefaultSettings(mode)},
			Selections:   input.Selections,
		}
		created, err := h.session.RegisterUser(ctx, u)
		if err != nil {
			return nil, UserResult{}, h.toolError("user register", err)
		}
		return nil, userResult(created), nil
	}
}
