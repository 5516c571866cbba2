// Package markup renders the HTML payloads the relay sends to Telegram and
// provides the text helpers the bot shares across features: localized
// numerals, grouped coin amounts, shorthand amount parsing, and the
// normalization used to detect forged balance messages.
package markup

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// HeaderSelf prefixes the author's own echo of a broadcast.
	HeaderSelf = "🙎🏻‍♂ You:"

	// UnknownName is the placeholder shown when a profile lookup fails.
	UnknownName = "ناشناس"

	// replyMarker introduces the localized reply counter footer.
	replyMarker = "⤶"
)

var (
	persian = message.NewPrinter(language.Persian)
	english = message.NewPrinter(language.English)
)

// HeaderFrom builds the header line shown to everyone except the author.
func HeaderFrom(displayName string) string {
	return "👤 " + displayName + ":"
}

// Render produces the full HTML payload for one delivery: a bold header,
// a blank line, and the body (bold when emphasized).
func Render(header, body string, emphasized bool) string {
	h := "<b>" + html.EscapeString(header) + "</b>"
	b := html.EscapeString(body)
	if emphasized {
		b = "<b>" + b + "</b>"
	}
	return h + "\n\n" + b
}

// RenderWithReplyCount re-renders a delivered message with the reply
// counter footer appended, numerals localized.
func RenderWithReplyCount(header, body string, emphasized bool, count int) string {
	return Render(header, body, emphasized) + "\n\n" + replyMarker + PersianDigits(count)
}

// PersianDigits formats n with Persian numerals and no grouping separator.
func PersianDigits(n int) string {
	return persian.Sprint(number.Decimal(n, number.NoSeparator()))
}

// FormatAmount renders a coin amount with thousands grouping ("1,234,567").
func FormatAmount(n int64) string {
	return english.Sprint(number.Decimal(n))
}

// OfficialBalanceText is the canonical plain text of the ".موجودی" balance
// broadcast as seen by its author. Incoming dot-messages matching it (after
// normalization) are rejected as forgery attempts.
func OfficialBalanceText(wallet int64) string {
	return HeaderSelf + "\n\n💰موجودی من :\n" + FormatAmount(wallet) + " 🪙"
}

// BalanceBody is the body part of the official balance broadcast.
func BalanceBody(wallet int64) string {
	return "💰موجودی من :\n" + FormatAmount(wallet) + " 🪙"
}

var (
	zeroWidthRE  = regexp.MustCompile("[\u200B\u200C\u200D\uFEFF]")
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// NormalizeForCheck strips zero-width characters, unifies newlines, and
// collapses runs of whitespace so cosmetic variations cannot defeat the
// forgery comparison.
func NormalizeForCheck(s string) string {
	s = zeroWidthRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// SanitizeBody rewrites glyphs a broadcast body may not impersonate: the
// coin emoji and the confirmation check used by official bot messages.
func SanitizeBody(s string) string {
	s = strings.ReplaceAll(s, "💰", " ")
	s = strings.ReplaceAll(s, "✅", "☑️")
	return s
}

// ParseAmount converts user-entered coin amounts, accepting the shorthand
// suffixes the bot has always understood: k/کا for thousands, m/میل for
// millions, b/بیل for billions.
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "میل"):
		mult, s = 1_000_000, strings.TrimSuffix(s, "میل")
	case strings.HasSuffix(s, "بیل"):
		mult, s = 1_000_000_000, strings.TrimSuffix(s, "بیل")
	case strings.HasSuffix(s, "کا"):
		mult, s = 1_000, strings.TrimSuffix(s, "کا")
	case strings.HasSuffix(s, "m"):
		mult, s = 1_000_000, strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "b"):
		mult, s = 1_000_000_000, strings.TrimSuffix(s, "b")
	case strings.HasSuffix(s, "k"):
		mult, s = 1_000, strings.TrimSuffix(s, "k")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n * mult, true
}
