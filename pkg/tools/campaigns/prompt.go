package campaigns

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func addCampaignAnalysisPrompt(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("campaign_analysis",
		mcp.WithPromptDescription("Guidance for evaluating campaign metrics and generating actionable optimization insights"),
	), handleCampaignAnalysisPrompt)
}

func handleCampaignAnalysisPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return mcp.NewGetPromptResult(
		"Campaign Performance Analyst",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				"system",
				mcp.NewTextContent("You are a campaign performance analyst. Your task is to analyze email campaign data."),
			),
			mcp.NewPromptMessage(
				"assistant",
				mcp.NewTextContent(`Given campaign metrics (open rate, click rate, conversions, etc.), please:

1. Performance Assessment:
   - Compare metrics against industry benchmarks
   - Identify high-performing and underperforming elements
   - Calculate ROI and cost per acquisition

2. Trend Analysis:
   - Analyze performance over time
   - Identify seasonal patterns or anomalies
   - Compare to previous campaigns

3. Audience Insights:
   - Segment performance by audience characteristics
   - Identify the most engaged segments
   - Note segments requiring re-engagement

4. Optimization Recommendations:
   - Suggest subject line improvements
   - Recommend send time optimizations
   - Propose A/B testing opportunities
   - Advise on content and CTA enhancements

5. Next Steps:
   - Prioritize action items by impact
   - Set specific, measurable improvement goals
   - Recommend follow-up campaigns or sequences

Provide actionable insights that can immediately improve campaign performance.`),
			),
		},
	), nil
}
