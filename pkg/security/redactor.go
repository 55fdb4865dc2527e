package security

import (
	"os"
	"sort"
	"strings"
)

// Redactor masks credential values in log output. Secrets are collected
// from the environment variables the project declares as sensitive
// (registry passwords, push tokens).
type Redactor struct {
	Secrets []string
}

// NewRedactor builds a redactor from the values of the named environment
// variables. Unset or empty variables contribute nothing.
func NewRedactor(envNames []string) *Redactor {
	var secretValues []string
	for _, name := range envNames {
		if val := os.Getenv(name); val != "" {
			secretValues = append(secretValues, val)
		}
	}
	return &Redactor{
		Secrets: secretValues,
	}
}

func (r *Redactor) Redact(s string) string {
	if r == nil || len(r.Secrets) == 0 {
		return s
	}

	// Sort secrets by length in descending order to handle overlapping secrets properly
	// This ensures longer secrets are replaced before their substrings
	secrets := make([]string, len(r.Secrets))
	copy(secrets, r.Secrets)
	sort.Slice(secrets, func(i, j int) bool {
		return len(secrets[i]) > len(secrets[j])
	})

	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, "********")
	}
	return s
}
