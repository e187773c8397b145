package validation

// ValidateEmail checks an address as entered on signup or in the profile.
func ValidateEmail(email string) error {
	return Var("email", email, "required,max=254,email")
}

// Var validates a single value against tag and reports it under field.
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	return convert(err, func(string) string { return field })
}
