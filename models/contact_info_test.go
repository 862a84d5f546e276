package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactInfo_Channels(t *testing.T) {
	t.Run("Absent email yields only phone", func(t *testing.T) {
		var ci ContactInfo
		require.NoError(t, json.Unmarshal([]byte(`{"telephone": "+213 555 12 34 56"}`), &ci))

		channels := ci.Channels()
		require.Len(t, channels, 1)
		assert.Equal(t, ChannelPhone, channels[0].Kind)
		assert.Equal(t, "+213 555 12 34 56", channels[0].Value)
		assert.Equal(t, "tel:+213555123456", channels[0].Href)
	})

	t.Run("Blank values are treated as absent", func(t *testing.T) {
		ci := ContactInfo{Email: strPtr(""), Facebook: strPtr("  ")}
		assert.Empty(t, ci.Channels())
		assert.True(t, ci.IsEmpty())
	})

	t.Run("Empty record", func(t *testing.T) {
		assert.Empty(t, ContactInfo{}.Channels())
	})
}

func TestContactInfo_PrimaryAndSocial(t *testing.T) {
	ci := DefaultContactInfo()

	primary := ci.PrimaryChannels()
	social := ci.SocialChannels()

	require.Len(t, primary, 3)
	assert.Equal(t, ChannelEmail, primary[0].Kind)
	assert.Equal(t, ChannelAddress, primary[1].Kind)
	assert.Equal(t, "", primary[1].Href)
	assert.Equal(t, ChannelHours, primary[2].Kind)

	require.Len(t, social, 5)
	for _, ch := range social {
		assert.True(t, ch.External(), ch.Kind)
	}
}

func TestContactInfo_Welcome(t *testing.T) {
	assert.Equal(t, "", ContactInfo{}.Welcome())
	assert.Equal(t, "Bienvenue", ContactInfo{WelcomeMessage: strPtr("Bienvenue")}.Welcome())
}
