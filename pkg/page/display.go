package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IsHidden reports whether the first element of s carries display: none
func IsHidden(s *goquery.Selection) bool {
	style, _ := s.Attr("style")
	return styleDisplay(style) == "none"
}

// Hide sets display: none on every element of s, keeping other style declarations
func Hide(s *goquery.Selection) {
	s.Each(func(_ int, el *goquery.Selection) {
		style, _ := el.Attr("style")
		el.SetAttr("style", withDisplay(style, "none"))
	})
}

// Show removes the display declaration from every element of s
func Show(s *goquery.Selection) {
	s.Each(func(_ int, el *goquery.Selection) {
		style, _ := el.Attr("style")
		rest := withDisplay(style, "")
		if rest == "" {
			el.RemoveAttr("style")
			return
		}
		el.SetAttr("style", rest)
	})
}

func styleDisplay(style string) string {
	res := ""
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "display") {
			res = strings.ToLower(strings.TrimSpace(val))
		}
	}
	return res
}

// withDisplay drops existing display declarations and appends display: value unless value is empty
func withDisplay(style, value string) string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		key, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(key), "display") {
			continue
		}
		decls = append(decls, decl)
	}
	if value != "" {
		decls = append(decls, "display: "+value)
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}
