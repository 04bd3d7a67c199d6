package tools

import (
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// LeadFilterParams builds the query parameters shared by the campaign-lead,
// seat-lead, and campaign-export endpoints. The upstream expects booleans as
// lowercase strings and list filters in the bracketed "[1,2,3]" form.
// Absent arguments are omitted entirely.
func LeadFilterParams(req mcp.CallToolRequest) (url.Values, error) {
	params := url.Values{}

	if search, ok := GetOptionalString(req, "search"); ok {
		params.Set("search", search)
	}
	if verified, ok := GetOptionalBool(req, "filter_by_verified_emails"); ok {
		params.Set("filterByVerifiedEmails", strconv.FormatBool(verified))
	}
	if notVerified, ok := GetOptionalBool(req, "filter_by_not_verified_emails"); ok {
		params.Set("filterByNotVerifiedEmails", strconv.FormatBool(notVerified))
	}
	if raw, ok := GetOptionalString(req, "filter_by_status"); ok {
		ids, err := ParseCommaInts(raw)
		if err != nil {
			return nil, err
		}
		params.Set("filterByStatus", BracketedInts(ids))
	}
	if raw, ok := GetOptionalString(req, "filter_by_connection_degree"); ok {
		ids, err := ParseCommaInts(raw)
		if err != nil {
			return nil, err
		}
		params.Set("filterByConnectionDegree", BracketedInts(ids))
	}
	if raw, ok := GetOptionalString(req, "filter_by_current_step"); ok {
		ids, err := ParseCommaInts(raw)
		if err != nil {
			return nil, err
		}
		params.Set("filterByCurrentStep", BracketedInts(ids))
	}
	if raw, ok := GetOptionalString(req, "filter_by_selected_leads"); ok {
		ids, err := ParseCommaInts(raw)
		if err != nil {
			return nil, err
		}
		params.Set("filterBySelectedLeads", BracketedInts(ids))
	}
	if name, ok := GetOptionalString(req, "filter_by_name"); ok {
		params.Set("filterByName", name)
	}
	if company, ok := GetOptionalString(req, "filter_by_company"); ok {
		params.Set("filterByCompany", company)
	}
	if occupation, ok := GetOptionalString(req, "filter_by_occupation"); ok {
		params.Set("filterByOccupation", occupation)
	}
	if headline, ok := GetOptionalString(req, "filter_by_headline"); ok {
		params.Set("filterByHeadline", headline)
	}
	if outOfOffice, ok := GetOptionalBool(req, "filter_by_out_of_office"); ok {
		params.Set("filterByOutOfOffice", strconv.FormatBool(outOfOffice))
	}
	if ts, ok := GetOptionalInt(req, "filter_by_step_change_timestamp"); ok {
		params.Set("filterByStepChangeTimestamp", strconv.Itoa(ts))
	}

	return params, nil
}

// LeadFilterOptions declares the shared filter arguments on a tool definition.
func LeadFilterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("search",
			mcp.Description("Search leads by fullName, email, company, headline, etc."),
		),
		mcp.WithBoolean("filter_by_verified_emails",
			mcp.Description("Only include leads with verified emails."),
		),
		mcp.WithBoolean("filter_by_not_verified_emails",
			mcp.Description("Only include leads without verified emails."),
		),
		mcp.WithString("filter_by_status",
			mcp.Description("Comma-separated status IDs (1=Discovered, 2=Connection pending, 3=Connected not replied, 4=Replied)."),
		),
		mcp.WithString("filter_by_connection_degree",
			mcp.Description("Comma-separated connection degrees, used with status 4 (1=replied connected, 2,3=replied not connected)."),
		),
		mcp.WithString("filter_by_current_step",
			mcp.Description("Comma-separated campaign step numbers to filter leads on."),
		),
		mcp.WithString("filter_by_selected_leads",
			mcp.Description("Comma-separated lead IDs to retrieve directly."),
		),
		mcp.WithString("filter_by_name",
			mcp.Description("Only include leads whose names contain this value."),
		),
		mcp.WithString("filter_by_company",
			mcp.Description("Only include leads whose company contains this value."),
		),
		mcp.WithString("filter_by_occupation",
			mcp.Description("Only include leads whose occupation contains this value."),
		),
		mcp.WithString("filter_by_headline",
			mcp.Description("Only include leads whose headline contains this value."),
		),
		mcp.WithBoolean("filter_by_out_of_office",
			mcp.Description("Only include leads with 'Out of office' status."),
		),
		mcp.WithNumber("filter_by_step_change_timestamp",
			mcp.Description("Only include leads whose stepChangeTimestamp is greater than this Unix timestamp."),
		),
	}
}
