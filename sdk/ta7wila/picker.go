package ta7wila

import "errors"

// ErrUnknownDestination is returned when a selection does not match any
// destination on the current channel.
var ErrUnknownDestination = errors.New("destination does not belong to the selected channel")

// DestinationPicker tracks channel and destination selection for a store's
// payment flow. Destinations are channel-scoped: switching channels clears
// any prior selection, and a channel with exactly one destination selects it
// automatically.
type DestinationPicker struct {
	destinations []Destination
	channel      string
	selectedSID  string
}

// NewDestinationPicker creates a picker over a store's destination list.
// Inactive destinations are never offered.
func NewDestinationPicker(destinations []Destination) *DestinationPicker {
	active := make([]Destination, 0, len(destinations))
	for _, d := range destinations {
		if d.Active {
			active = append(active, d)
		}
	}
	return &DestinationPicker{destinations: active}
}

// SelectChannel switches the active channel. A switch to a different channel
// clears the current destination selection; when the new channel has exactly
// one destination it becomes selected immediately.
func (p *DestinationPicker) SelectChannel(channel string) {
	if channel == p.channel {
		return
	}
	p.channel = channel
	p.selectedSID = ""

	filtered := p.Destinations()
	if len(filtered) == 1 {
		p.selectedSID = filtered[0].SID
	}
}

// Channel returns the currently selected channel key.
func (p *DestinationPicker) Channel() string {
	return p.channel
}

// Destinations returns the destinations available on the selected channel.
func (p *DestinationPicker) Destinations() []Destination {
	if p.channel == "" {
		return nil
	}
	filtered := make([]Destination, 0, len(p.destinations))
	for _, d := range p.destinations {
		if d.Channel == p.channel {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Select picks a destination by SID. It fails when the destination does not
// belong to the selected channel.
func (p *DestinationPicker) Select(sid string) error {
	for _, d := range p.Destinations() {
		if d.SID == sid {
			p.selectedSID = sid
			return nil
		}
	}
	return ErrUnknownDestination
}

// SelectedSID returns the selected destination SID, if any.
func (p *DestinationPicker) SelectedSID() (string, bool) {
	if p.selectedSID == "" {
		return "", false
	}
	return p.selectedSID, true
}
