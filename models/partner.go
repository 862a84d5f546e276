package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Partner is a partner organisation as returned by the backend.
// Records are identified by PartenaireID or, for older rows, the numeric ID.
type Partner struct {
	PartenaireID     *string           `json:"partenaire_id,omitempty"`
	ID               *int64            `json:"id,omitempty"`
	Name             string            `json:"nom_partenaire"`
	Logo             string            `json:"logo,omitempty"`
	Description      any               `json:"description,omitempty"`
	Address          any               `json:"adresse,omitempty"`
	Email            string            `json:"email"`
	Phone            string            `json:"telephone"`
	Website          string            `json:"site_web"`
	AddedAt          string            `json:"date_ajout,omitempty"`
	Active           *bool             `json:"actif,omitempty"`
	Facebook         string            `json:"facebook,omitempty"`
	Instagram        string            `json:"instagram,omitempty"`
	TikTok           string            `json:"tiktok,omitempty"`
	Type             any               `json:"type_partenaire,omitempty"`
	StartDate        string            `json:"date_deb"`
	EndDate          string            `json:"date_fin"`
	ExternalLinks    map[string]string `json:"liens_externes,omitempty"`
	CompanyCreatedAt string            `json:"date_creation_entreprise"`
	DisplayPriority  float64           `json:"priorite_affichage"`
	BannerImage      string            `json:"image_banniere,omitempty"`
}

// MatchesID reports whether id equals partenaire_id or the decimal form of id.
// Both keys are checked: older records only carry the numeric id.
func (p Partner) MatchesID(id string) bool {
	if p.PartenaireID != nil && *p.PartenaireID == id {
		return true
	}
	return p.ID != nil && strconv.FormatInt(*p.ID, 10) == id
}

// Key returns the identifier used in partner URLs.
func (p Partner) Key() string {
	if p.PartenaireID != nil && *p.PartenaireID != "" {
		return *p.PartenaireID
	}
	if p.ID != nil {
		return strconv.FormatInt(*p.ID, 10)
	}
	return ""
}

// IsActive reports whether the partner should be displayed at the given time.
// Missing or unparseable window bounds are treated as open.
func (p Partner) IsActive(now time.Time) bool {
	if p.Active != nil && !*p.Active {
		return false
	}
	if start, ok := parsePartnerDate(p.StartDate); ok && now.Before(start) {
		return false
	}
	if end, ok := parsePartnerDate(p.EndDate); ok {
		// date_fin is inclusive of the whole day
		if now.After(end.Add(24*time.Hour - time.Nanosecond)) {
			return false
		}
	}
	return true
}

// DescriptionText returns the description when the backend sent plain text.
func (p Partner) DescriptionText() string {
	return freeFormText(p.Description)
}

// AddressText returns the address when the backend sent plain text.
func (p Partner) AddressText() string {
	return freeFormText(p.Address)
}

// TypeText returns the partner sector when the backend sent plain text.
func (p Partner) TypeText() string {
	return freeFormText(p.Type)
}

// Links returns the partner's contact and social channels that carry a value.
func (p Partner) Links() []ContactChannel {
	channels := []ContactChannel{
		newChannel(ChannelEmail, p.Email),
		newChannel(ChannelPhone, p.Phone),
		newChannel(ChannelWebsite, p.Website),
		newChannel(ChannelFacebook, p.Facebook),
		newChannel(ChannelInstagram, p.Instagram),
		newChannel(ChannelTikTok, p.TikTok),
	}

	seen := map[ChannelKind]bool{}
	var out []ContactChannel
	for _, ch := range channels {
		if ch.Value == "" {
			continue
		}
		seen[ch.Kind] = true
		out = append(out, ch)
	}

	// liens_externes may duplicate the flat social fields
	names := make([]string, 0, len(p.ExternalLinks))
	for name := range p.ExternalLinks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kind := ChannelKind(strings.ToLower(name))
		if seen[kind] {
			continue
		}
		ch := newChannel(kind, p.ExternalLinks[name])
		if ch.Value == "" {
			continue
		}
		seen[kind] = true
		out = append(out, ch)
	}
	return out
}

// SortByPriority orders partners by priorite_affichage ascending, then by name.
func SortByPriority(partners []Partner) {
	sort.SliceStable(partners, func(i, j int) bool {
		if partners[i].DisplayPriority != partners[j].DisplayPriority {
			return partners[i].DisplayPriority < partners[j].DisplayPriority
		}
		return strings.ToLower(partners[i].Name) < strings.ToLower(partners[j].Name)
	})
}

// ActivePartners returns the displayable partners in display order.
// The input slice is not modified.
func ActivePartners(partners []Partner, now time.Time) []Partner {
	out := make([]Partner, 0, len(partners))
	for _, p := range partners {
		if p.IsActive(now) {
			out = append(out, p)
		}
	}
	SortByPriority(out)
	return out
}

func parsePartnerDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func freeFormText(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
