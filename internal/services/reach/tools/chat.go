package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aviato/internal/services/reach/app"
	"github.com/louisbranch/aviato/internal/services/reach/domain/approval"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
)

// MessageResult is one message of a conversation.
type MessageResult struct {
	ID        string `json:"id" jsonschema:"message identifier"`
	SenderID  string `json:"sender_id" jsonschema:"sender user identifier"`
	Text      string `json:"text" jsonschema:"message body"`
	Timestamp string `json:"timestamp" jsonschema:"RFC3339 send time"`
	Seen      bool   `json:"seen" jsonschema:"whether the recipient replied after this message"`
}

// ConversationResult is the tool view of a conversation.
type ConversationResult struct {
	ID                 string          `json:"id" jsonschema:"conversation identifier"`
	UserID             string          `json:"user_id" jsonschema:"the other participant"`
	Messages           []MessageResult `json:"messages" jsonschema:"messages, oldest first"`
	TimerStarted       string          `json:"timer_started,omitempty" jsonschema:"RFC3339 start of the current response window"`
	Rated              bool            `json:"rated" jsonschema:"whether the current window was rated"`
	RatingType         string          `json:"rating_type,omitempty" jsonschema:"good or bad"`
	RatingReason       string          `json:"rating_reason,omitempty" jsonschema:"penalty reason of a bad rating"`
	WaitingForResponse bool            `json:"waiting_for_response" jsonschema:"the last message was outbound"`
	LastMessage        string          `json:"last_message" jsonschema:"preview of the newest message"`
	LastMessageTime    string          `json:"last_message_time,omitempty" jsonschema:"RFC3339 time of the newest message"`
	PreviousMode       string          `json:"previous_mode,omitempty" jsonschema:"the contact's mode when the conversation started"`
}

func conversationResult(c conversation.Conversation) ConversationResult {
	messages := make([]MessageResult, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, MessageResult{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Text:      m.Text,
			Timestamp: formatTime(m.Timestamp),
			Seen:      m.Seen,
		})
	}
	return ConversationResult{
		ID:                 c.ID,
		UserID:             c.UserID,
		Messages:           messages,
		TimerStarted:       formatTimePtr(c.TimerStarted),
		Rated:              c.Rated,
		RatingType:         string(c.RatingType),
		RatingReason:       c.RatingReason,
		WaitingForResponse: c.WaitingForResponse,
		LastMessage:        c.LastMessage,
		LastMessageTime:    formatTime(c.LastMessageTime),
		PreviousMode:       c.PreviousMode,
	}
}

// ChatTargetInput names the other participant of a conversation.
type ChatTargetInput struct {
	UserID string `json:"user_id" jsonschema:"the other participant"`
}

// ChatStartTool defines the MCP tool schema for opening a conversation.
func ChatStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "chat_start",
		Description: "Opens a conversation with a user. A new conversation requires the user to be reachable now.",
	}
}

// ChatStart executes a conversation start.
func (h *Handlers) ChatStart() mcp.ToolHandlerFor[ChatTargetInput, ConversationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ChatTargetInput) (*mcp.CallToolResult, ConversationResult, error) {
		c, err := h.session.StartChat(ctx, input.UserID)
		if err != nil {
			return nil, ConversationResult{}, h.toolError("chat start", err)
		}
		return nil, conversationResult(c), nil
	}
}

// ChatGetTool defines the MCP tool schema for reading a conversation.
func ChatGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "chat_get",
		Description: "Returns the conversation with a user.",
	}
}

// ChatGet executes a conversation read.
func (h *Handlers) ChatGet() mcp.ToolHandlerFor[ChatTargetInput, ConversationResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ChatTargetInput) (*mcp.CallToolResult, ConversationResult, error) {
		c, err := h.session.Conversation(input.UserID)
		if err != nil {
			return nil, ConversationResult{}, h.toolError("chat get", err)
		}
		return nil, conversationResult(c), nil
	}
}

// MessageInput represents the MCP tool input for a message.
type MessageInput struct {
	UserID string `json:"user_id" jsonschema:"the other participant"`
	Text   string `json:"text" jsonschema:"message body"`
}

// MessageSendTool defines the MCP tool schema for sending a message.
func MessageSendTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "message_send",
		Description: "Sends a message. The first message after a closed window starts a new 2 minute response window.",
	}
}

// MessageSend executes an outbound message.
func (h *Handlers) MessageSend() mcp.ToolHandlerFor[MessageInput, ConversationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MessageInput) (*mcp.CallToolResult, ConversationResult, error) {
		c, err := h.session.SendMessage(ctx, input.UserID, input.Text)
		if err != nil {
			return nil, ConversationResult{}, h.toolError("message send", err)
		}
		return nil, conversationResult(c), nil
	}
}

// MessageReceiveTool defines the MCP tool schema for recording a reply.
func MessageReceiveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "message_receive",
		Description: "Records a reply from the other participant. The response window is unchanged.",
	}
}

// MessageReceive executes an inbound message.
func (h *Handlers) MessageReceive() mcp.ToolHandlerFor[MessageInput, ConversationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MessageInput) (*mcp.CallToolResult, ConversationResult, error) {
		c, err := h.session.ReceiveMessage(ctx, input.UserID, input.Text)
		if err != nil {
			return nil, ConversationResult{}, h.toolError("message receive", err)
		}
		return nil, conversationResult(c), nil
	}
}

// ChatRowResult is one chat-list entry.
type ChatRowResult struct {
	UserID      string `json:"user_id" jsonschema:"the other participant"`
	ContactName string `json:"contact_name,omitempty" jsonschema:"display name of the other participant"`
	ContactMode string `json:"contact_mode" jsonschema:"the other participant's mode"`
	LastMessage string `json:"last_message" jsonschema:"preview of the newest message"`
	Phase       string `json:"phase" jsonschema:"no_timer, active, expired or rated"`
	Countdown   string `json:"countdown" jsonschema:"MM:SS left in the response window"`
	Tone        string `json:"tone" jsonschema:"countdown urgency: green, orange or red"`
	Status      string `json:"status" jsonschema:"localized status line"`
}

// ChatListResult lists the chat rows, most recent first.
type ChatListResult struct {
	Chats []ChatRowResult `json:"chats" jsonschema:"chat rows, most recent first"`
}

func chatListResult(rows []app.ChatRow, names map[string]string) ChatListResult {
	out := ChatListResult{Chats: make([]ChatRowResult, 0, len(rows))}
	for _, r := range rows {
		out.Chats = append(out.Chats, ChatRowResult{
			UserID:      r.Conversation.UserID,
			ContactName: names[r.Conversation.UserID],
			ContactMode: r.Contact.DisplayMode.String(),
			LastMessage: r.Conversation.LastMessage,
			Phase:       string(r.Phase),
			Countdown:   r.Countdown,
			Tone:        string(r.Tone),
			Status:      r.Status,
		})
	}
	return out
}

// ChatListTool defines the MCP tool schema for the chat list.
func ChatListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "chat_list",
		Description: "Lists conversations with their countdown and status as of now.",
	}
}

// ChatList executes a chat-list read.
func (h *Handlers) ChatList() mcp.ToolHandlerFor[EmptyInput, ChatListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, ChatListResult, error) {
		return nil, chatListResult(h.session.ChatList(), h.names()), nil
	}
}

func (h *Handlers) names() map[string]string {
	directory := h.session.Directory()
	names := make(map[string]string, len(directory))
	for _, u := range directory {
		names[u.ID] = u.DisplayName()
	}
	return names
}

// ChatDeleteAllTool defines the MCP tool schema for deleting every chat.
func ChatDeleteAllTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "chat_delete_all",
		Description: "Deletes every conversation of the logged-in user.",
	}
}

// ChatDeleteAll executes a chat wipe.
func (h *Handlers) ChatDeleteAll() mcp.ToolHandlerFor[EmptyInput, AckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, AckResult, error) {
		if err := h.session.DeleteAllChats(ctx); err != nil {
			return nil, AckResult{}, h.toolError("chat delete all", err)
		}
		return nil, AckResult{OK: true}, nil
	}
}

// ChatRateInput represents the MCP tool input for rating a conversation.
type ChatRateInput struct {
	UserID string `json:"user_id" jsonschema:"the other participant"`
	Good   bool   `json:"good" jsonschema:"true for a positive rating"`
	Reason string `json:"reason,omitempty" jsonschema:"penalty reason for a negative rating; see rating_reasons"`
}

// ChatRateResult reports an applied rating.
type ChatRateResult struct {
	Delta        int                `json:"delta" jsonschema:"approval change applied to the other participant"`
	Approval     int                `json:"approval" jsonschema:"the other participant's new approval"`
	Conversation ConversationResult `json:"conversation" jsonschema:"the rated conversation"`
}

// ChatRateTool defines the MCP tool schema for rating a conversation.
func ChatRateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "chat_rate",
		Description: "Rates the current response window of a conversation once. Good adds 10 approval; bad subtracts the reason's penalty.",
	}
}

// ChatRate executes a conversation rating.
func (h *Handlers) ChatRate() mcp.ToolHandlerFor[ChatRateInput, ChatRateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ChatRateInput) (*mcp.CallToolResult, ChatRateResult, error) {
		res, err := h.session.RateConversation(ctx, input.UserID, input.Good, input.Reason)
		if err != nil {
			return nil, ChatRateResult{}, h.toolError("chat rate", err)
		}
		return nil, ChatRateResult{
			Delta:        res.Delta,
			Approval:     res.Approval,
			Conversation: conversationResult(res.Conversation),
		}, nil
	}
}

// RatingReason is one negative rating reason and its penalty.
type RatingReason struct {
	Reason  string `json:"reason" jsonschema:"reason text"`
	Penalty int    `json:"penalty" jsonschema:"approval change"`
}

// RatingReasonsResult lists the negative rating reasons.
type RatingReasonsResult struct {
	Reasons []RatingReason `json:"reasons" jsonschema:"reasons in display order"`
}

// RatingReasonsTool defines the MCP tool schema for listing rating reasons.
func RatingReasonsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "rating_reasons",
		Description: "Lists the reasons a conversation can be rated negatively, with their penalties.",
	}
}

// RatingReasons lists the penalty table.
func (h *Handlers) RatingReasons() mcp.ToolHandlerFor[EmptyInput, RatingReasonsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, RatingReasonsResult, error) {
		reasons := approval.Reasons()
		out := RatingReasonsResult{Reasons: make([]RatingReason, 0, len(reasons))}
		for _, r := range reasons {
			out.Reasons = append(out.Reasons, RatingReason{Reason: r, Penalty: approval.Penalty(r)})
		}
		return nil, out, nil
	}
}
