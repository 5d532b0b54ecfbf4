package model

import (
	"fmt"
	"strings"

	"github.com/clippintel/botscore/internal/domain/valueobject"
)

// AccountIdentity names the account being analyzed. It is supplied by the caller and never changes.
type AccountIdentity struct {
	Handle   string               `json:"handle"`
	Platform valueobject.Platform `json:"platform"`
}

// NewAccountIdentity builds an identity, stripping whitespace and a leading "@" from the handle.
func NewAccountIdentity(handle string, platform valueobject.Platform) (AccountIdentity, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if clean == "" {
		return AccountIdentity{}, fmt.Errorf("account handle is required")
	}
	if platform.IsZero() {
		return AccountIdentity{}, fmt.Errorf("platform is required")
	}
	return AccountIdentity{Handle: clean, Platform: platform}, nil
}

// ParseAccountIdentity parses "handle:platform" (or "@handle:platform").
func ParseAccountIdentity(s string) (AccountIdentity, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return AccountIdentity{}, fmt.Errorf("invalid account %q: expected handle:platform", s)
	}
	platform, err := valueobject.PlatformFromString(s[idx+1:])
	if err != nil {
		return AccountIdentity{}, err
	}
	return NewAccountIdentity(s[:idx], platform)
}

// Key is a stable lookup key of the form "platform:handle", handle lowercased.
func (a AccountIdentity) Key() string {
	return a.Platform.String() + ":" + strings.ToLower(a.Handle)
}

func (a AccountIdentity) String() string {
	return "@" + a.Handle + " (" + a.Platform.String() + ")"
}
