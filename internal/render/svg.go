package render

import (
	"fmt"
	"strings"
)

// xmlEscaper covers text content and attribute values alike.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// group positions its children by a translation offset so moving a whole
// block means changing one pair of numbers.
func group(x, y float64, children ...string) string {
	return fmt.Sprintf(`<g transform="translate(%g,%g)">%s</g>`, x, y, strings.Join(children, ""))
}

func textEl(x, y float64, size int, anchor, fill, font, content string) string {
	return fmt.Sprintf(
		`<text x="%g" y="%g" font-size="%d" font-family="%s" fill="%s" text-anchor="%s" dominant-baseline="text-before-edge">%s</text>`,
		x, y, size, escape(font), escape(fill), anchor, escape(content))
}

func imageEl(href string, x, y, size float64) string {
	return fmt.Sprintf(`<image xlink:href="%s" x="%g" y="%g" width="%g" height="%g"/>`,
		escape(href), x, y, size, size)
}

func linkEl(href, child string) string {
	return fmt.Sprintf(`<a xlink:href="%s" target="_blank">%s</a>`, escape(href), child)
}

// rule is the horizontal separator above the style-specific extension row.
func rule(width float64, stroke string) string {
	return fmt.Sprintf(`<line x1="0" y1="0" x2="%g" y2="0" stroke="%s" stroke-opacity="0.35" stroke-width="1"/>`,
		width, escape(stroke))
}
