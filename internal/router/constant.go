package router

// Log prefixes
const (
	LogPrefixProcess = "internal.router.Process"
)
