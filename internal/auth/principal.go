package auth

// AuthorityPrefix is prepended to role names when a principal is attached to
// the request context, matching the authority convention downstream
// authorization checks expect.
const AuthorityPrefix = "ROLE_"

// Principal is the identity a verified token asserts. It is reconstructed
// fresh on every verification and never persisted.
type Principal struct {
	Subject string
	Roles   []string
}

// Authorities returns the role set re-expressed as ROLE_-prefixed authority
// strings.
func (p Principal) Authorities() []string {
	authorities := make([]string, 0, len(p.Roles))
	for _, role := range p.Roles {
		authorities = append(authorities, AuthorityPrefix+role)
	}
	return authorities
}

// HasAuthority reports whether the principal carries the given authority.
func (p Principal) HasAuthority(authority string) bool {
	for _, role := range p.Roles {
		if AuthorityPrefix+role == authority {
			return true
		}
	}
	return false
}
