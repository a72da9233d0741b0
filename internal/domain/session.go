package domain

import "time"

// SessionToken is one active credential: the signed token string and
// when it was issued.
type SessionToken struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// TokenSet is the ordered sequence of a user's active sessions. A
// token authenticates only while an identical string is present here;
// Append and Clear are the only mutations, so revocation is enforced
// in one place.
type TokenSet []SessionToken

// Contains reports whether the exact token string is present. No
// normalization is applied.
func (s TokenSet) Contains(token string) bool {
	for _, entry := range s {
		if entry.Token == token {
			return true
		}
	}
	return false
}

// Append records a new session. Duplicates are permitted: each login
// produces its own entry and the set does not assume token strings are
// unique.
func (s TokenSet) Append(token string, issuedAt time.Time) TokenSet {
	return append(s, SessionToken{Token: token, IssuedAt: issuedAt})
}

// Clear invalidates every outstanding session at once. Single-device
// logout is not supported; logout is global.
func (s TokenSet) Clear() TokenSet {
	return TokenSet{}
}
