package application

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const credentialKeyPrefix = "stk/rpc"

// CredentialKey is the secret store key for the bearer token of an RPC
// endpoint: stk/rpc/<host>/token.
func CredentialKey(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return "", errors.New("rpc endpoint is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse rpc endpoint: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("rpc endpoint %q has no host", endpoint)
	}

	return credentialKeyPrefix + "/" + strings.ToLower(parsed.Host) + "/token", nil
}
