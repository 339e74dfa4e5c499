package corpus

import "github.com/poiesic/metadex/core"

// DemoQueries are the queries run by the demo command.
var DemoQueries = []string{
	"How do I authenticate with OAuth in version 2.0?",
	"What are the rate limits for authentication?",
	"How do I troubleshoot 401 errors?",
	"Tell me about storage pricing",
}

// Sample returns the built-in technical documentation set. Each call returns
// a fresh slice.
func Sample() []core.Document {
	return []core.Document{
		{
			ID:    "auth_v2",
			Title: "Authentication API Reference v2.0",
			Content: `# Authentication API v2.0

The Authentication API provides secure access control for all platform services.

## OAuth 2.0 Implementation
To authenticate using OAuth 2.0, send a POST request to /auth/oauth2/token
with your client credentials. The response includes an access token valid
for 1 hour and a refresh token valid for 30 days.

### Rate Limits
- Standard tier: 100 requests per minute
- Premium tier: 1000 requests per minute

Note: API key authentication is deprecated as of v2.0.
Last updated: March 2024`,
		},
		{
			ID:    "auth_v1",
			Title: "Authentication API Reference v1.0 (Legacy)",
			Content: `# Authentication API v1.0 (Legacy)

## API Key Authentication
Generate an API key from the dashboard and include it in the X-API-Key header.

### Rate Limits
- All tiers: 60 requests per minute

Note: This version is deprecated. Please upgrade to v2.0.
Last updated: January 2023`,
		},
		{
			ID:    "storage",
			Title: "Storage Service Guide",
			Content: `# Storage Service Guide

Our distributed storage service provides scalable object storage.

## Pricing Tiers
- Standard storage: $0.023 per GB/month
- Archive: $0.004 per GB/month

Storage service uses the Authentication API v2.0 for access control.

Last updated: April 2024`,
		},
		{
			ID:    "troubleshooting",
			Title: "Troubleshooting Guide: Authentication Errors",
			Content: "# Troubleshooting Guide: Authentication Errors\n\n" +
				"## Problem: 401 Unauthorized Error\n" +
				"**Cause**: Invalid or expired credentials\n" +
				"**Solution**: \n" +
				"1. Verify that your OAuth token hasn't expired (tokens are valid for 1 hour)\n" +
				"2. Use the refresh token to obtain a new access token\n\n" +
				"## Problem: Rate Limiting (429 Error)  \n" +
				"**Cause**: Exceeding rate limits\n" +
				"**Solution**:\n" +
				"1. Standard tier allows 100 req/min\n" +
				"2. Consider upgrading to premium tier for 1000 req/min\n\n" +
				"Last updated: March 2024",
		},
	}
}
