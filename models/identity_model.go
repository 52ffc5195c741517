package models

// ResolvedIdentity carries the caller's verified claims, built once per
// request from the trusted proxy headers and passed by value into services.
type ResolvedIdentity struct {
	SubjectID string
	Email     string
	Name      string
	Username  string
	Groups    []string
}

// InGroup reports whether the identity carries the given group membership.
func (i ResolvedIdentity) InGroup(group string) bool {
	for _, g := range i.Groups {
		if g == group {
			return true
		}
	}
	return false
}
