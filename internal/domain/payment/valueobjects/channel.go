package valueobjects

import "fmt"

// ChannelKey identifies a payment channel a store can accept. Mobile wallet
// brands carry their operator code; InstaPay is handle-based.
type ChannelKey string

const (
	ChannelVCash    ChannelKey = "vcash"
	ChannelECash    ChannelKey = "ecash"
	ChannelOCash    ChannelKey = "ocash"
	ChannelWeCash   ChannelKey = "wecash"
	ChannelInstapay ChannelKey = "instapay"
)

func NewChannelKey(key string) (ChannelKey, error) {
	ck := ChannelKey(key)
	if !ck.IsValid() {
		return "", fmt.Errorf("invalid payment channel: %s", key)
	}
	return ck, nil
}

func (ck ChannelKey) IsValid() bool {
	switch ck {
	case ChannelVCash, ChannelECash, ChannelOCash, ChannelWeCash, ChannelInstapay:
		return true
	default:
		return false
	}
}

// IsInstapay returns true when destinations and sender identifiers for this
// channel are handle-based rather than mobile numbers.
func (ck ChannelKey) IsInstapay() bool {
	return ck == ChannelInstapay
}

func (ck ChannelKey) String() string {
	return string(ck)
}

// AllChannelKeys returns the full set of supported channel keys.
func AllChannelKeys() []ChannelKey {
	return []ChannelKey{ChannelVCash, ChannelECash, ChannelOCash, ChannelWeCash, ChannelInstapay}
}
