package components

import (
	"strconv"
	"time"
)

// ReloadAfter is how long a loading page waits before reloading itself
const ReloadAfter = 2 * time.Second

func reloadAfterMillis() string {
	return strconv.FormatInt(ReloadAfter.Milliseconds(), 10)
}

var heroReveal = Reveal{Element: "hero", Transition: FadeUp}
