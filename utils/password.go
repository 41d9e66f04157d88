package utils

import (
	"strings"
	"unicode"

	"github.com/matthewhartstonge/argon2"
)

const MinPasswordLength = 8

var commonPasswords = map[string]bool{
	"password": true, "password1": true, "password123": true, "12345678": true,
	"123456789": true, "1234567890": true, "qwerty123": true, "qwertyuiop": true,
	"iloveyou": true, "sunshine": true, "princess": true, "football": true,
	"baseball": true, "welcome1": true, "abc12345": true, "letmein1": true,
	"trustno1": true, "superman": true, "11111111": true, "00000000": true,
	"passw0rd": true, "admin123": true, "dragon12": true, "monkey12": true,
}

func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, err
	}
	return ok, nil
}

// PasswordProblems returns every rule the password breaks, empty when it is
// acceptable.
func PasswordProblems(password, username string) []string {
	problems := []string{}

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if commonPasswords[strings.ToLower(password)] {
		problems = append(problems, "This password is too common.")
	}
	if password != "" && isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if username != "" && tooSimilar(password, username) {
		problems = append(problems, "The password is too similar to the username.")
	}
	return problems
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func tooSimilar(password, username string) bool {
	p := strings.ToLower(password)
	u := strings.ToLower(username)
	if len(u) < 3 {
		return p == u
	}
	return strings.Contains(p, u) || strings.Contains(u, p)
}
