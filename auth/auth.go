// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for any account
const MinPasswordLength = 8

// MaxPasswordLength is the longest password bcrypt can hash, in bytes
const MaxPasswordLength = 72

var (
	ErrInvalidToken      = errors.New("invalid token format")
	ErrExpiredToken      = errors.New("token expired")
	ErrPasswordTooShort  = errors.New("password too short")
	ErrPasswordTooLong   = errors.New("password too long")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewID returns a UUID for use as a row primary key
func NewID() string {
	return uuid.NewString()
}

// NormalizeEmail trims and lower-cases an email address so lookups are
// case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrIncorrectPassword
	}
	return nil
}

// IssueToken creates a signed bearer token for a user.
// Format: base64url(userID|expiryUnix).base64url(HMAC-SHA256)
func IssueToken(userID, secret string, ttl time.Duration) string {
	payload := userID + "|" + strconv.FormatInt(time.Now().Add(ttl).Unix(), 10)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + sign(encoded, secret)
}

// ParseToken validates a bearer token and returns the user ID it was issued for
func ParseToken(token, secret string) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || sig == "" {
		return "", ErrInvalidToken
	}

	if !hmac.Equal([]byte(sig), []byte(sign(encoded, secret))) {
		return "", ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}

	userID, expiry, ok := strings.Cut(string(raw), "|")
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	expiresAt, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().Unix() >= expiresAt {
		return "", ErrExpiredToken
	}

	return userID, nil
}

func sign(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
