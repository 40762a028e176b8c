package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

// TrustLevel selects how strict sender identifier validation is. The public
// checkout page applies stricter InstaPay handle requirements than the
// authenticated dashboard, where the operator is trusted to verify out of band.
type TrustLevel int

const (
	TrustDashboard TrustLevel = iota
	TrustPublic
)

// InstaPay handle minimum lengths per trust level.
const (
	instapayMinLenDashboard = 3
	instapayMinLenPublic    = 6
)

var (
	// Local mobile format: four recognized operator prefixes plus 8 digits.
	mobilePattern = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)

	// InstaPay handles: bank aliases like "user@bank" or "name.ipa".
	instapayPattern = regexp.MustCompile(`^[a-zA-Z0-9@._-]+$`)
)

// SenderIdentifier is the payer-side identifier of a transaction claim: a
// mobile number for wallet channels, a handle for InstaPay. Validation rules
// depend on the channel, so the identifier is always constructed with one.
type SenderIdentifier struct {
	value   string
	channel ChannelKey
}

// NewSenderIdentifier validates and normalizes a sender identifier for the
// given channel at the given trust level.
func NewSenderIdentifier(raw string, channel ChannelKey, trust TrustLevel) (SenderIdentifier, error) {
	if !channel.IsValid() {
		return SenderIdentifier{}, fmt.Errorf("invalid payment channel: %s", channel)
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return SenderIdentifier{}, fmt.Errorf("sender identifier is required")
	}

	if channel.IsInstapay() {
		minLen := instapayMinLenDashboard
		if trust == TrustPublic {
			minLen = instapayMinLenPublic
		}
		if len(value) < minLen {
			return SenderIdentifier{}, fmt.Errorf("instapay handle must be at least %d characters", minLen)
		}
		if !instapayPattern.MatchString(value) {
			return SenderIdentifier{}, fmt.Errorf("instapay handle may only contain letters, digits and @._-")
		}
		return SenderIdentifier{value: value, channel: channel}, nil
	}

	normalized := NormalizeMobile(value)
	if !mobilePattern.MatchString(normalized) {
		return SenderIdentifier{}, fmt.Errorf("mobile number must match a local format (010/011/012/015 plus 8 digits)")
	}
	return SenderIdentifier{value: normalized, channel: channel}, nil
}

// NormalizeMobile strips an optional country-code prefix ("+2" or "002") and
// surrounding whitespace from a mobile number.
func NormalizeMobile(raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.ReplaceAll(v, " ", "")
	if strings.HasPrefix(v, "+2") {
		v = v[2:]
	} else if strings.HasPrefix(v, "002") {
		v = v[3:]
	}
	return v
}

// ReconstructSenderIdentifier rebuilds an identifier from persistence without
// re-validating. Stored values were already normalized on write.
func ReconstructSenderIdentifier(value string, channel ChannelKey) SenderIdentifier {
	return SenderIdentifier{value: value, channel: channel}
}

func (s SenderIdentifier) Value() string {
	return s.value
}

func (s SenderIdentifier) Channel() ChannelKey {
	return s.channel
}

func (s SenderIdentifier) IsZero() bool {
	return s.value == ""
}
