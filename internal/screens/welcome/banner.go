package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsupport/internal/ui/theme"
)

// Tagline is shown under the banner.
const Tagline = "A digital friend for mental wellness"

const bannerArt = `
 ___  ___  _   _ _     ___ _   _ ___ ___  ___  ___ _____
/ __|/ _ \| | | | |   / __| | | | _ \ _ \/ _ \| _ \_   _|
\__ \ (_) | |_| | |__ \__ \ |_| |  _/  _/ (_) |   / | |
|___/\___/ \___/|____||___/\___/|_| |_|  \___/|_|_\ |_|`

const bannerCompact = "S O U L S U P P O R T"

// RenderBanner returns the SoulSupport banner in the primary color,
// falling back to a single line on terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
