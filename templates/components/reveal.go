package components

import (
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Transition describes how an element enters the viewport
type Transition struct {
	Effect   string // fade, fade-up, slide-start
	Duration time.Duration
}

var (
	FadeUp     = Transition{Effect: "fade-up", Duration: 600 * time.Millisecond}
	Fade       = Transition{Effect: "fade", Duration: 600 * time.Millisecond}
	SlideStart = Transition{Effect: "slide-start", Duration: 400 * time.Millisecond}
)

// Reveal is one entrance animation: element appears after Delay once it is
// visible. static/js/reveal.js plays them from the data-reveal attributes.
type Reveal struct {
	Element    string
	Delay      time.Duration
	Transition Transition
}

// Attrs returns the data-reveal attributes of r, to be spread on an element
func (r Reveal) Attrs() templ.OrderedAttributes {
	attrs := templ.OrderedAttributes{templ.KV[string, any]("data-reveal", r.Transition.Effect)}
	if r.Delay > 0 {
		attrs = append(attrs, templ.KV[string, any]("data-reveal-delay", strconv.FormatInt(r.Delay.Milliseconds(), 10)))
	}
	return append(attrs, templ.KV[string, any]("data-reveal-duration", strconv.FormatInt(r.Transition.Duration.Milliseconds(), 10)))
}

// Stagger returns the reveal of the i-th item of a list, each item delayed
// by step after the previous one.
func (r Reveal) Stagger(i int, step time.Duration) Reveal {
	r.Delay += time.Duration(i) * step
	return r
}

// RevealPlan is the ordered entrance configuration of a view
type RevealPlan []Reveal

// For returns the reveal of element, or a plain fade when the plan has none.
func (p RevealPlan) For(element string) Reveal {
	for _, r := range p {
		if r.Element == element {
			return r
		}
	}
	return Reveal{Element: element, Transition: Fade}
}
