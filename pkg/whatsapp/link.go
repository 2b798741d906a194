package whatsapp

import (
	"strings"
)

const deepLinkBase = "https://wa.me/"

// DeepLink builds https://wa.me/<phone>?text=<encoded text>. Everything but
// digits is stripped from phone, as wa.me expects.
func DeepLink(phone, text string) string {
	return deepLinkBase + digitsOnly(phone) + "?text=" + EncodeURIComponent(text)
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeURIComponent escapes s like ECMAScript encodeURIComponent: UTF-8
// bytes are percent-encoded except A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
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
