package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	chatsResourceURI     = "reach://chats"
	userResourcePrefix   = "reach://users/"
	userResourceTemplate = "reach://users/{user_id}"
)

// ChatsResource defines the MCP resource for the live chat list.
func ChatsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "chats",
		Title:       "Chats",
		Description: "Conversations with their countdown and status as of the read",
		MIMEType:    "application/json",
		URI:         chatsResourceURI,
	}
}

// ChatsResourceHandler reads the chat list.
func (h *Handlers) ChatsResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := chatsResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != chatsResourceURI {
			return nil, fmt.Errorf("invalid URI: expected %s, got %q", chatsResourceURI, uri)
		}
		return jsonResource(uri, chatListResult(h.session.ChatList(), h.names()))
	}
}

// UserResourceTemplate defines the MCP resource template for one user.
func UserResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "user",
		Title:       "User",
		Description: "A directory member with their availability now",
		MIMEType:    "application/json",
		URITemplate: userResourceTemplate,
	}
}

// UserResourcePayload is the body of a user resource.
type UserResourcePayload struct {
	User UserResult `json:"user"`
	Mode ModeResult `json:"mode"`
}

// UserResourceHandler reads one user.
func (h *Handlers) UserResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil {
			return nil, fmt.Errorf("resource uri is required")
		}
		uri := req.Params.URI
		userID, ok := strings.CutPrefix(uri, userResourcePrefix)
		if !ok || strings.TrimSpace(userID) == "" {
			return nil, fmt.Errorf("invalid URI: expected %s, got %q", userResourceTemplate, uri)
		}
		u, err := h.session.User(userID)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", uri, h.toolError("user resource", err))
		}
		return jsonResource(uri, UserResourcePayload{
			User: userResult(u),
			Mode: modeResult(h.session.CurrentMode(u.ID)),
		})
	}
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}
