package ta7wila

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDestinations() []Destination {
	return []Destination{
		{SID: "pd_1", Channel: "vcash", Value: "01012345678", Active: true},
		{SID: "pd_2", Channel: "vcash", Value: "01087654321", Active: true},
		{SID: "pd_3", Channel: "instapay", Value: "merchant@bank", Active: true},
		{SID: "pd_4", Channel: "orange_cash", Value: "01211112222", Active: false},
	}
}

func TestDestinationPicker_FiltersByChannel(t *testing.T) {
	picker := NewDestinationPicker(testDestinations())

	assert.Empty(t, picker.Destinations())

	picker.SelectChannel("vcash")
	filtered := picker.Destinations()
	require.Len(t, filtered, 2)
	assert.Equal(t, "pd_1", filtered[0].SID)
	assert.Equal(t, "pd_2", filtered[1].SID)

	// inactive destinations are never offered
	picker.SelectChannel("orange_cash")
	assert.Empty(t, picker.Destinations())
}

func TestDestinationPicker_AutoSelectsSingleDestination(t *testing.T) {
	picker := NewDestinationPicker(testDestinations())

	picker.SelectChannel("instapay")
	sid, ok := picker.SelectedSID()
	require.True(t, ok)
	assert.Equal(t, "pd_3", sid)

	// two candidates, explicit choice required
	picker.SelectChannel("vcash")
	_, ok = picker.SelectedSID()
	assert.False(t, ok)
}

func TestDestinationPicker_ChannelSwitchClearsSelection(t *testing.T) {
	picker := NewDestinationPicker(testDestinations())

	picker.SelectChannel("vcash")
	require.NoError(t, picker.Select("pd_2"))

	sid, ok := picker.SelectedSID()
	require.True(t, ok)
	assert.Equal(t, "pd_2", sid)

	// reselecting the same channel keeps the choice
	picker.SelectChannel("vcash")
	sid, ok = picker.SelectedSID()
	require.True(t, ok)
	assert.Equal(t, "pd_2", sid)

	// switching channels drops it
	picker.SelectChannel("instapay")
	sid, _ = picker.SelectedSID()
	assert.NotEqual(t, "pd_2", sid)
}

func TestDestinationPicker_RejectsCrossChannelSelection(t *testing.T) {
	picker := NewDestinationPicker(testDestinations())

	picker.SelectChannel("vcash")
	err := picker.Select("pd_3")
	assert.ErrorIs(t, err, ErrUnknownDestination)

	_, ok := picker.SelectedSID()
	assert.False(t, ok)
}
