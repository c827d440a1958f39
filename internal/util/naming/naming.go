package naming

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// SuffixLength is the length of the random suffix of generated names.
const SuffixLength = 6

const (
	placeholderPrefix = "temp_value_about_"
	suffixAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// SuffixFunc returns a random suffix for generated names.
type SuffixFunc func() string

// RandomSuffix returns SuffixLength random characters from [a-z0-9].
func RandomSuffix() string {
	b := make([]byte, SuffixLength)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

func Function(framework, suffix string) string {
	return fmt.Sprintf("%s_component_%s", framework, suffix)
}

func ClientRemark(framework string) string {
	return "tencent-" + framework
}

func GatewayDescription(framework string) string {
	return fmt.Sprintf("Serverless Framework Tencent-%s Component", capitalize(framework))
}

func DNSPlaceholder(region string) string {
	return placeholderPrefix + region
}

// RegionFromPlaceholder extracts the region encoded in a DNS placeholder.
func RegionFromPlaceholder(value string) (string, bool) {
	if !strings.HasPrefix(value, placeholderPrefix) {
		return "", false
	}
	return strings.TrimPrefix(value, placeholderPrefix), true
}

func StateName(framework, stage string) string {
	return fmt.Sprintf("%s-%s", framework, stage)
}

func capitalize(s string) string {
	if len(s) < 2 {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
