package ai

// TaskDescription tells the model which fields to extract and how to shape them.
const TaskDescription = `Extract these specific fields from technical documentation:

1. service_name: The MAIN service or API name from the title (e.g., "Authentication API", "Storage Service")
2. version_number: The version number ONLY (e.g., "2.0", "1.0") - extract just the number
3. document_category: The document type - MUST be one of: "reference", "guide", "troubleshooting"
4. rate_limits: Any rate limiting information
5. deprecated_items: Things marked as deprecated

Be very precise - extract the EXACT main service name from the title.
For version, extract ONLY the number (like "2.0", not "v2.0" or "version 2.0").
For category: "Reference" = reference, "Guide" = guide, "Troubleshooting" = troubleshooting.`

// WorkedExamples is the example set sent with every extraction request.
var WorkedExamples = []Example{
	{
		Text: "# Payment API v3.0 Reference\n\nThe Payment API handles transactions.\n\nRate limit: 500 requests per minute",
		Extractions: []Extraction{
			{Class: LabelServiceName, Text: "Payment API"},
			{Class: LabelVersionNumber, Text: "3.0"},
			{Class: LabelDocumentCategory, Text: "reference"},
			{Class: LabelRateLimits, Text: "500 requests per minute"},
		},
	},
}
