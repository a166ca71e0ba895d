package model

// Account holds the resolved credential fields for one external service.
// Field names follow the backing file's flat key convention ("username",
// "token", "email", "password").
type Account struct {
	Service string
	Fields  map[string]string
}

// Username returns the account's username field, or "" when unset.
func (a Account) Username() string {
	return a.Fields["username"]
}

// Token returns the account's token field, or "" when unset.
func (a Account) Token() string {
	return a.Fields["token"]
}

// Empty reports whether every field value is empty. Empty accounts are
// excluded from the resolved credential map.
func (a Account) Empty() bool {
	for _, v := range a.Fields {
		if v != "" {
			return false
		}
	}
	return true
}
