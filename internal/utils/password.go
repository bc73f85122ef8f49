package utils

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash stored in users.password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AppPassword derives the NextCloud app password handed out for a login
// token. It has the form "token:sha1(hash+token)".
// TODO: replace with per-device app passwords stored in their own table.
func AppPassword(passwordHash, token string) string {
	sum := sha1.Sum([]byte(passwordHash + token))
	return token + ":" + hex.EncodeToString(sum[:])
}

// CheckAppPassword verifies a "token:hash" value sent as the HTTP Basic
// password by NextCloud clients.
func CheckAppPassword(passwordHash, given string) bool {
	token, _, ok := strings.Cut(given, ":")
	if !ok || token == "" {
		return false
	}
	expected := AppPassword(passwordHash, token)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

// GenerateToken returns 160 random bits as 40 hex characters.
func GenerateToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IsAlphanumeric reports whether s is non-empty and only contains ASCII
// letters and digits.
func IsAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
