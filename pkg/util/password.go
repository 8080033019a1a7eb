package util

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds
// 密码长度限制
const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
)

// HashPassword hashes a plaintext password with bcrypt
// HashPassword 使用 bcrypt 对明文密码进行哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash
// CheckPassword 校验明文密码与 bcrypt 哈希是否匹配
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsStrongPassword enforces the password policy: 8-64 characters with at
// least one digit, one lowercase, one uppercase and one special character.
// IsStrongPassword 校验密码强度策略：8-64 个字符，
// 且至少包含一个数字、一个小写字母、一个大写字母和一个特殊字符。
func IsStrongPassword(password string) bool {
	runes := []rune(password)
	if len(runes) < PasswordMinLength || len(runes) > PasswordMaxLength {
		return false
	}

	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
				hasSpecial = true
			}
		}
	}
	return hasDigit && hasLower && hasUpper && hasSpecial
}
