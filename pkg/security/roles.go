package security

// CheckRole reports whether the user may pass a route's role gate. An empty
// required set always allows; otherwise the user's role must be a member.
func CheckRole(user *User, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	if user == nil {
		return false
	}
	for _, role := range requiredRoles {
		if user.Role == role {
			return true
		}
	}
	return false
}
