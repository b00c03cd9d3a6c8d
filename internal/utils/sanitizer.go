package utils

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// RichTextPolicy is the allow-list applied to user supplied rich text: basic
// formatting, lists, headings, links and code, with no scripts, styles or event handlers.
func RichTextPolicy() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "s", "strike",
			"ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6",
			"blockquote", "code", "pre", "span", "div", "hr")
		p.AllowAttrs("href", "title").OnElements("a")
		p.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
		p.AllowStandardURLs()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "div", "p", "code", "pre")
		richTextPolicy = p
	})
	return richTextPolicy
}

// SanitizeHTML applies RichTextPolicy and trims the result.
func SanitizeHTML(s string) string {
	return strings.TrimSpace(RichTextPolicy().Sanitize(s))
}

// SanitizeHTMLPtr sanitizes an optional field, mapping blank results to nil.
func SanitizeHTMLPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeHTML(*s)
	if clean == "" {
		return nil
	}
	return &clean
}

// StripTags removes all markup, for plain text fields. Entities are decoded again so the
// stored value is plain text and escaping stays the renderer's job.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s)))
}
