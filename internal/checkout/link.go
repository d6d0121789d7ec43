package checkout

import (
	"strings"

	"storefront/internal/model"
)

// ShortLinkPrefix marks a messaging target that is already a short link.
const ShortLinkPrefix = "wa.link/"

// Unconfigured is returned in place of a URL when no messaging target is set.
const Unconfigured = "#"

// LinkBuilder builds deep links into the shop's messaging account.
type LinkBuilder struct {
	target string
}

// NewLinkBuilder creates a link builder for target, which is either a phone
// number in international format or a wa.link short link.
func NewLinkBuilder(target string) *LinkBuilder {
	return &LinkBuilder{target: strings.TrimSpace(target)}
}

// Configured reports whether a messaging target is set.
func (b *LinkBuilder) Configured() bool {
	return b.target != ""
}

// URL returns the deep link that opens a conversation pre-filled with
// message. Without a target it returns Unconfigured and model.ErrLinkNotConfigured.
func (b *LinkBuilder) URL(message string) (string, error) {
	if b.target == "" {
		return Unconfigured, model.ErrLinkNotConfigured
	}

	base := "https://wa.me/" + b.target
	if strings.HasPrefix(b.target, ShortLinkPrefix) {
		base = "https://" + b.target
	}

	return base + "?text=" + EncodeURIComponent(message), nil
}

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: everything except ASCII letters, digits and -_.!~*'() is
// escaped as UTF-8 bytes.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
