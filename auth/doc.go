// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, bearer tokens, and ID generation.

# Passwords

Passwords are hashed with bcrypt and must be at least MinPasswordLength bytes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

# Bearer Tokens

Tokens are stateless and signed with HMAC-SHA256 using the session secret:

	token := auth.IssueToken(userID, secret, 7*24*time.Hour)
	userID, err := auth.ParseToken(token, secret)

The payload carries the user ID and an expiry timestamp. Tampered tokens
return ErrInvalidToken and stale ones return ErrExpiredToken. Because nothing
is stored server-side, rotating SESSION_SECRET invalidates every token.

# ID Generation

Rows use UUIDs:

	id := auth.NewID()

Random hex strings are available for anything that needs an opaque secret:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
