package validation

import "strings"

// commonPasswordPatterns are rejected anywhere in a password, ignoring case.
var commonPasswordPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword requires 12 to 72 bytes, the upper bound being what bcrypt
// hashes, and no common pattern.
func ValidatePassword(password string) error {
	err := Var("password", password, "min=12,max=72")
	if err != nil {
		return err
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPasswordPatterns {
		if strings.Contains(lower, pattern) {
			e := &Error{}
			e.Add("password", "common", pattern)
			return e
		}
	}
	return nil
}
