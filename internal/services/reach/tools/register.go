package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register adds every reach tool and resource to server.
func Register(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server, LoginTool(), h.Login())
	mcp.AddTool(server, LogoutTool(), h.Logout())
	mcp.AddTool(server, UserGetTool(), h.UserGet())
	mcp.AddTool(server, UserListTool(), h.UserList())
	mcp.AddTool(server, UserRegisterTool(), h.UserRegister())

	mcp.AddTool(server, AvailabilitySetTool(), h.AvailabilitySet())
	mcp.AddTool(server, AvailabilityDeactivateTool(), h.AvailabilityDeactivate())
	mcp.AddTool(server, AvailabilityGetTool(), h.AvailabilityGet())

	mcp.AddTool(server, ChatStartTool(), h.ChatStart())
	mcp.AddTool(server, ChatGetTool(), h.ChatGet())
	mcp.AddTool(server, ChatListTool(), h.ChatList())
	mcp.AddTool(server, ChatDeleteAllTool(), h.ChatDeleteAll())
	mcp.AddTool(server, MessageSendTool(), h.MessageSend())
	mcp.AddTool(server, MessageReceiveTool(), h.MessageReceive())
	mcp.AddTool(server, ChatRateTool(), h.ChatRate())
	mcp.AddTool(server, RatingReasonsTool(), h.RatingReasons())

	mcp.AddTool(server, ReviewSubmitTool(), h.ReviewSubmit())
	mcp.AddTool(server, ReviewListTool(), h.ReviewList())

	mcp.AddTool(server, SearchSelectionsSetTool(), h.SearchSelectionsSet())
	mcp.AddTool(server, ProfileSelectionsUpdateTool(), h.ProfileSelectionsUpdate())
	mcp.AddTool(server, MatchesFindTool(), h.MatchesFind())

	server.AddResource(ChatsResource(), h.ChatsResourceHandler())
	server.AddResourceTemplate(UserResourceTemplate(), h.UserResourceHandler())
}
