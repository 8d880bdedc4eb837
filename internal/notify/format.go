package notify

import (
	"fmt"
	"html"
	"strings"
)

const defaultCurrency = "€"

// FormatOfferHTML renders the offer as a Telegram HTML message.
func FormatOfferHTML(offer *OfferPayload) string {
	var b strings.Builder

	b.WriteString("🚨 <b>Offer found!</b>\n")
	if offer.URL != "" {
		fmt.Fprintf(&b, "<a href=\"%s\">%s</a>\n\n", html.EscapeString(offer.URL), html.EscapeString(offer.Name))
	} else {
		fmt.Fprintf(&b, "<b>%s</b>\n\n", html.EscapeString(offer.Name))
	}

	cur := html.EscapeString(currency(offer))
	fmt.Fprintf(&b, "💰 <b>Price: %s%s</b>", html.EscapeString(offer.PromoPrice), cur)
	if offer.BasePrice != "" {
		fmt.Fprintf(&b, " (was %s%s)", html.EscapeString(offer.BasePrice), cur)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "📏 <b>Available sizes:</b> %s", html.EscapeString(strings.Join(offer.Sizes, ", ")))

	return b.String()
}

func currency(offer *OfferPayload) string {
	if offer.Currency == "" {
		return defaultCurrency
	}
	return offer.Currency
}
