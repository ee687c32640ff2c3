package common

// GetAccountFromArgs extracts the account name from request arguments.
// Falls back to "default" when no explicit account is provided. Account names
// map to API token environment variables, e.g. "work" reads
// TODOIST_API_TOKEN_WORK.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
