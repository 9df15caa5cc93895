package utils

const (
	OrganizationName                      = "Poof"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// Audit name used when a request carries no authenticated user.
	AnonymousUser = "Anonymous"

	DefaultUserLanguage   = "NL"
	DefaultSystemLanguage = "EN"
)
