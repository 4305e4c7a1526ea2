package v1

var authenticationAllowlist = map[string]bool{
	"/api/v1/signup":        true,
	"/api/v1/signin":        true,
	"/api/v1/auth/callback": true,
}

// isUnauthorizeAllowed returns whether the path is exempted from authentication.
func isUnauthorizeAllowed(fullMethodName string) bool {
	return authenticationAllowlist[fullMethodName]
}

var allowedPathOnlyForHost = map[string]bool{
	"/api/v1/settings/general": true,
}

// isOnlyForHostAllowedPath returns true if the path may only be called by the host.
func isOnlyForHostAllowedPath(methodName string) bool {
	return allowedPathOnlyForHost[methodName]
}
