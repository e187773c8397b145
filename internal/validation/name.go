package validation

import "strings"

// ValidateName checks a display name. Surrounding spaces do not count.
func ValidateName(name string) error {
	return Var("name", strings.TrimSpace(name), "required,max=100")
}
