package project

// Confirmation is proof that the user agreed to delete one specific path.
// The zero value confirms nothing.
type Confirmation struct {
	path string
}

// Path returns the path the confirmation was issued for.
func (c Confirmation) Path() string { return c.path }

func (c Confirmation) covers(path string) bool {
	return c.path != "" && c.path == path
}
