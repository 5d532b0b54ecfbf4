package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Platform identifies the social network an account lives on.
type Platform struct {
	value string
}

var (
	PlatformInstagram = Platform{value: "instagram"}
	PlatformTikTok    = Platform{value: "tiktok"}
	PlatformYouTube   = Platform{value: "youtube"}
	PlatformTwitter   = Platform{value: "twitter"}
)

// Platforms lists every supported platform.
func Platforms() []Platform {
	return []Platform{PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformTwitter}
}

// PlatformFromString parses a platform name, ignoring case and surrounding space.
func PlatformFromString(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instagram":
		return PlatformInstagram, nil
	case "tiktok":
		return PlatformTikTok, nil
	case "youtube":
		return PlatformYouTube, nil
	case "twitter":
		return PlatformTwitter, nil
	default:
		return Platform{}, fmt.Errorf("invalid platform: %s", s)
	}
}

func (p Platform) String() string { return p.value }
func (p Platform) IsZero() bool   { return p.value == "" }

// Equal checks equality with another Platform.
func (p Platform) Equal(other Platform) bool {
	return p.value == other.value
}

// MarshalJSON renders the platform as its string literal.
func (p Platform) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON parses one of the supported platform names.
func (p *Platform) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := PlatformFromString(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
