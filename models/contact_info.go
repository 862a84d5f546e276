package models

import (
	"strings"
)

// ContactInfo is the organisation-wide contact record shown in the footer
// and on the contact page. Every field is optional; a nil or blank field
// means the channel is not shown.
type ContactInfo struct {
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"telephone,omitempty"`
	Website        *string `json:"site_web,omitempty"`
	Address        *string `json:"adresse,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
	LinkedIn       *string `json:"linkedin,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	TikTok         *string `json:"tiktok,omitempty"`
	WelcomeMessage *string `json:"message_accueil,omitempty"`
	OpeningHours   *string `json:"horaires,omitempty"`
}

// ChannelKind identifies a contact or social channel
type ChannelKind string

const (
	ChannelEmail     ChannelKind = "email"
	ChannelPhone     ChannelKind = "phone"
	ChannelAddress   ChannelKind = "address"
	ChannelHours     ChannelKind = "hours"
	ChannelWebsite   ChannelKind = "website"
	ChannelFacebook  ChannelKind = "facebook"
	ChannelInstagram ChannelKind = "instagram"
	ChannelLinkedIn  ChannelKind = "linkedin"
	ChannelTwitter   ChannelKind = "x"
	ChannelTikTok    ChannelKind = "tiktok"
)

// ContactChannel is one displayable entry of a contact list
type ContactChannel struct {
	Kind  ChannelKind
	Value string
	Href  string // empty when the channel is not linkable
}

// IsSocial reports whether the channel belongs in the social column
func (c ContactChannel) IsSocial() bool {
	switch c.Kind {
	case ChannelEmail, ChannelPhone, ChannelAddress, ChannelHours:
		return false
	}
	return true
}

// External reports whether the link leaves the site
func (c ContactChannel) External() bool {
	return strings.HasPrefix(c.Href, "http")
}

// Channels returns the contact entries that carry a value, in display order.
func (ci ContactInfo) Channels() []ContactChannel {
	candidates := []ContactChannel{
		newChannel(ChannelEmail, deref(ci.Email)),
		newChannel(ChannelPhone, deref(ci.Phone)),
		newChannel(ChannelAddress, deref(ci.Address)),
		newChannel(ChannelHours, deref(ci.OpeningHours)),
		newChannel(ChannelWebsite, deref(ci.Website)),
		newChannel(ChannelFacebook, deref(ci.Facebook)),
		newChannel(ChannelInstagram, deref(ci.Instagram)),
		newChannel(ChannelLinkedIn, deref(ci.LinkedIn)),
		newChannel(ChannelTwitter, deref(ci.Twitter)),
		newChannel(ChannelTikTok, deref(ci.TikTok)),
	}
	return presentChannels(candidates)
}

// PrimaryChannels returns the direct contact entries (email, phone, address, hours).
func (ci ContactInfo) PrimaryChannels() []ContactChannel {
	var out []ContactChannel
	for _, ch := range ci.Channels() {
		if !ch.IsSocial() {
			out = append(out, ch)
		}
	}
	return out
}

// SocialChannels returns the website and social network entries.
func (ci ContactInfo) SocialChannels() []ContactChannel {
	var out []ContactChannel
	for _, ch := range ci.Channels() {
		if ch.IsSocial() {
			out = append(out, ch)
		}
	}
	return out
}

// Welcome returns the welcome message, or "" when absent.
func (ci ContactInfo) Welcome() string {
	return deref(ci.WelcomeMessage)
}

// IsEmpty reports whether no field carries a value.
func (ci ContactInfo) IsEmpty() bool {
	return len(ci.Channels()) == 0 && ci.Welcome() == ""
}

// DefaultContactInfo holds the contact details published on the site
// before the backend exposed them.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Email:        strPtr("contact@toorrii.com"),
		Address:      strPtr("Algiers, Algeria"),
		OpeningHours: strPtr("9:00 - 17:00"),
		Website:      strPtr("https://www.toorrii.com"),
		Facebook:     strPtr("https://facebook.com/toorrii"),
		Instagram:    strPtr("https://instagram.com/toorrii"),
		LinkedIn:     strPtr("https://linkedin.com/company/toorrii"),
		Twitter:      strPtr("https://x.com/toorrii"),
	}
}

func presentChannels(candidates []ContactChannel) []ContactChannel {
	out := make([]ContactChannel, 0, len(candidates))
	for _, ch := range candidates {
		if ch.Value != "" {
			out = append(out, ch)
		}
	}
	return out
}

// newChannel builds a channel with its link target. Blank values produce a
// channel with an empty Value, which callers drop.
func newChannel(kind ChannelKind, value string) ContactChannel {
	value = strings.TrimSpace(value)
	ch := ContactChannel{Kind: kind, Value: value}
	if value == "" {
		return ch
	}

	switch kind {
	case ChannelEmail:
		ch.Href = "mailto:" + value
	case ChannelPhone:
		ch.Href = "tel:" + strings.ReplaceAll(value, " ", "")
	case ChannelAddress, ChannelHours:
		// not linkable
	default:
		ch.Href = value
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			ch.Href = "https://" + strings.TrimPrefix(value, "//")
		}
	}
	return ch
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
