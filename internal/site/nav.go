package site

import "github.com/wolfman30/jwbeauty-studio/internal/i18n"

// HeaderOffset is the height in pixels of the sticky header.
const HeaderOffset = 64

// NavVisible reports whether the header stays visible after the page scrolled
// from lastY to y. It hides only past the header height and while scrolling
// down.
func NavVisible(y, lastY float64) bool {
	return !(y > HeaderOffset && y > lastY)
}

// SectionOffset is the scroll target for a section whose top edge sits at top
// relative to the viewport when the page is scrolled to pageY.
func SectionOffset(top, pageY float64) float64 {
	return top + pageY - HeaderOffset
}

type navLink struct {
	Section string
	Key     i18n.Key
}

var navLinks = []navLink{
	{Section: "home", Key: i18n.KeyNavHome},
	{Section: "services", Key: i18n.KeyNavServices},
	{Section: "about", Key: i18n.KeyNavAbout},
	{Section: "google-reviews", Key: i18n.KeyNavReviews},
	{Section: "contact", Key: i18n.KeyNavContact},
}
