package leads

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func addLeadEnrichmentPrompt(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("lead_enrichment",
		mcp.WithPromptDescription("Guidance for analyzing and enriching lead data: company research, contact validation, and lead scoring"),
	), handleLeadEnrichmentPrompt)
}

func handleLeadEnrichmentPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return mcp.NewGetPromptResult(
		"Lead Enrichment Specialist",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				"system",
				mcp.NewTextContent("You are a lead enrichment specialist. Your task is to analyze and enrich lead data."),
			),
			mcp.NewPromptMessage(
				"assistant",
				mcp.NewTextContent(`Given a lead with basic information (email, name, company), please:

1. Validate Contact Information:
   - Verify email format and domain validity
   - Check if the company name is legitimate
   - Identify potential data quality issues

2. Company Research:
   - Provide industry classification
   - Estimate company size and revenue range
   - Identify key products or services
   - Note any recent news or funding events

3. Lead Scoring:
   - Assign a lead score (1-100) based on company size and industry fit,
     contact title and seniority, email domain quality, and data completeness

4. Enrichment Suggestions:
   - List missing data points that should be collected
   - Suggest relevant tags or categories
   - Recommend next best actions for outreach

5. Red Flags:
   - Identify any suspicious patterns
   - Note potential spam or invalid contacts
   - Highlight data inconsistencies

Provide your analysis in a structured format that can be used to update the lead record.`),
			),
		},
	), nil
}
