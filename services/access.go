package services

// Authorize allows a principal to act only on resources it owns
func Authorize(principal, owner string) error {
	if principal == "" || principal != owner {
		return ErrAccessDenied
	}
	return nil
}
