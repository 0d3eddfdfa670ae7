package chat

import (
	"strings"

	"github.com/keepmind9/pingbot/pkg/constants"
)

// maskSecret masks sensitive information for logging. It counts runes so the
// result stays valid UTF-8.
func maskSecret(s string) string {
	r := []rune(s)
	if len(r) <= constants.MinSecretLengthForMasking {
		return "***"
	}
	return string(r[:constants.SecretMaskPrefixLength]) + "***" + string(r[len(r)-constants.SecretMaskSuffixLength:])
}

// maskEmail keeps the domain readable and masks the local part
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return maskSecret(email)
	}
	r := []rune(local)
	if len(r) <= constants.SecretMaskPrefixLength {
		return "***@" + domain
	}
	return string(r[:constants.SecretMaskPrefixLength]) + "***@" + domain
}
