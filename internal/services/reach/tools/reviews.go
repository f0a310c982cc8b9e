package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aviato/internal/services/reach/domain/review"
)

// ReviewSubmitInput represents the MCP tool input for a star review.
type ReviewSubmitInput struct {
	UserID string `json:"user_id" jsonschema:"user being reviewed"`
	Rating int    `json:"rating" jsonschema:"stars from 1 to 5"`
}

// ReviewSubmitTool defines the MCP tool schema for a star review.
func ReviewSubmitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "review_submit",
		Description: "Leaves a 1 to 5 star review on another user. Each user can be reviewed once.",
	}
}

// ReviewSubmit executes a star review.
func (h *Handlers) ReviewSubmit() mcp.ToolHandlerFor[ReviewSubmitInput, UserResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReviewSubmitInput) (*mcp.CallToolResult, UserResult, error) {
		u, err := h.session.SubmitReview(ctx, input.UserID, input.Rating)
		if err != nil {
			return nil, UserResult{}, h.toolError("review submit", err)
		}
		return nil, userResult(u), nil
	}
}

// ReviewResult is one visible review.
type ReviewResult struct {
	RaterID   string `json:"rater_id" jsonschema:"reviewer identifier"`
	RaterName string `json:"rater_name" jsonschema:"reviewer display name"`
	Rating    int    `json:"rating" jsonschema:"stars"`
	Label     string `json:"label" jsonschema:"word for the star count"`
}

// ReviewListResult lists reviews of a user.
type ReviewListResult struct {
	Reviews []ReviewResult `json:"reviews" jsonschema:"reviews in submission order"`
}

// ReviewListTool defines the MCP tool schema for listing reviews.
func ReviewListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "review_list",
		Description: "Lists who reviewed a user. Only available after reviewing that user yourself.",
	}
}

// ReviewList executes a review listing.
func (h *Handlers) ReviewList() mcp.ToolHandlerFor[ChatTargetInput, ReviewListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ChatTargetInput) (*mcp.CallToolResult, ReviewListResult, error) {
		reviews, err := h.session.ListReviews(input.UserID)
		if err != nil {
			return nil, ReviewListResult{}, h.toolError("review list", err)
		}
		out := ReviewListResult{Reviews: make([]ReviewResult, 0, len(reviews))}
		for _, r := range reviews {
			out.Reviews = append(out.Reviews, ReviewResult{
				RaterID:   r.RaterID,
				RaterName: r.RaterName,
				Rating:    r.Rating,
				Label:     review.Label(r.Rating),
			})
		}
		return nil, out, nil
	}
}
