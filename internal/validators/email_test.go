package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailCheckerNormalize(t *testing.T) {
	c := EmailChecker{}

	email, code := c.Normalize("  Amy.Lee@Example.COM ")
	assert.Equal(t, "amy.lee@example.com", email)
	assert.Empty(t, code)

	for _, bad := range []string{"", "amy", "amy@", "Amy <amy@example.com>"} {
		_, code := c.Normalize(bad)
		assert.Equal(t, "invalid_email", code, bad)
	}
}

func TestIsEmailDomainValidRejectsMissingDomain(t *testing.T) {
	assert.False(t, IsEmailDomainValid("amy@"))
	assert.False(t, IsEmailDomainValid("amy"))
}
