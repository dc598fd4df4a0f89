package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

func init() {
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	// Add noopener or noreferrer and follow security best practices
	policy.RequireNoReferrerOnLinks(true)
}

// SanitizeContent strips unsafe HTML from a submitted message body.
// Display names are not run through this; they are stored as supplied.
func SanitizeContent(source string) string {
	return policy.Sanitize(source)
}
