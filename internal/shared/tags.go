package shared

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// svgTags lists SVG element names the HTML atom table does not know.
var svgTags = map[string]bool{
	"svg": true, "animate": true, "animateMotion": true, "animateTransform": true,
	"circle": true, "clipPath": true, "defs": true, "desc": true, "ellipse": true,
	"feBlend": true, "feColorMatrix": true, "feGaussianBlur": true, "filter": true,
	"foreignObject": true, "g": true, "image": true, "line": true, "linearGradient": true,
	"marker": true, "mask": true, "metadata": true, "path": true, "pattern": true,
	"polygon": true, "polyline": true, "radialGradient": true, "rect": true, "stop": true,
	"switch": true, "symbol": true, "text": true, "textPath": true, "tspan": true,
	"use": true, "view": true,
}

// IsHTMLTag reports whether tag is a known HTML element name.
func IsHTMLTag(tag string) bool {
	if tag == "" || strings.ToLower(tag) != tag {
		return false
	}
	a := atom.Lookup([]byte(tag))
	return a != 0 && a.String() == tag && !isAttributeOnlyAtom(a)
}

// IsSVGTag reports whether tag is a known SVG element name.
func IsSVGTag(tag string) bool {
	return svgTags[tag]
}

// IsNativeTag reports whether tag is rendered as a plain element rather than
// resolved as a component.
func IsNativeTag(tag string) bool {
	return IsHTMLTag(tag) || IsSVGTag(tag)
}

// The atom table also interns attribute names and a few keywords. Those
// must not classify a tag as native.
func isAttributeOnlyAtom(a atom.Atom) bool {
	switch a {
	case atom.Action, atom.Alt, atom.Charset, atom.Checked, atom.Class, atom.Disabled,
		atom.Height, atom.Hidden, atom.Href, atom.Id, atom.Lang, atom.Method, atom.Name,
		atom.Placeholder, atom.Rel, atom.Required, atom.Src, atom.Target, atom.Type,
		atom.Value, atom.Width:
		return true
	default:
		return false
	}
}
