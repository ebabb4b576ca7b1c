package domain

import "strings"

// CallerKind tags which identity a Caller carries.
type CallerKind int8

const (
	Anonymous CallerKind = iota
	Reader
	Admin
)

func (k CallerKind) String() string {
	switch k {
	case Reader:
		return "READER"
	case Admin:
		return "ADMIN"
	default:
		return "ANONYMOUS"
	}
}

// Caller is the resolved identity of whoever issued a request.
// Email is only meaningful for Reader.
type Caller struct {
	Kind  CallerKind
	Email string
}

func AnonymousCaller() Caller {
	return Caller{Kind: Anonymous}
}

func ReaderCaller(email string) Caller {
	email = NormalizeEmail(email)
	if email == "" {
		return AnonymousCaller()
	}
	return Caller{Kind: Reader, Email: email}
}

func AdminCaller() Caller {
	return Caller{Kind: Admin}
}

func (c Caller) IsAdmin() bool {
	return c.Kind == Admin
}

func (c Caller) IsAuthenticated() bool {
	return c.Kind != Anonymous
}

// Credentials is everything a request proved about itself: an optional
// reader session email and whether the admin cookie was valid.
type Credentials struct {
	ReaderEmail string
	Admin       bool
}

// Caller reconciles the credentials into one identity. When both are present
// the admin identity wins only if preferAdmin is set, so an admin who is also
// signed in as a reader can still post under their own address.
func (c Credentials) Caller(preferAdmin bool) Caller {
	reader := ReaderCaller(c.ReaderEmail)
	switch {
	case c.Admin && (preferAdmin || !reader.IsAuthenticated()):
		return AdminCaller()
	case reader.IsAuthenticated():
		return reader
	default:
		return AnonymousCaller()
	}
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LocalPart returns what comes before the @ of an address.
func LocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
