// Package locale formats numbers, currency amounts, percentages, dates and
// times according to a table of supported locales.
//
// Locale codes are matched with golang.org/x/text/language, so "de",
// "de_AT" and "de-DE" all select the German table. Codes that match
// nothing fall back to [Default] with an unknown_locale warning rather
// than an error.
//
// Currency minor units come from golang.org/x/text/currency: JPY and KRW
// format with no decimals, most others with two.
package locale
