package helper

import "strings"

// UnifiedSymbol собирает символ вида BASE/QUOTE:SETTLE.
func UnifiedSymbol(base, quote, settle string) string {
	return base + "/" + quote + ":" + settle
}

// NormalizeSymbol приводит символ из ленты к виду BASE/QUOTE:QUOTE.
// Понимает три формы: уже нормализованный, голый base ("LUMIA"),
// base+quote ("LUMIAUSDT"). Пустой результат: символ не разобрать.
func NormalizeSymbol(raw, quote string) string {
	if raw == "" || quote == "" {
		return ""
	}
	suffix := "/" + quote + ":" + quote
	if strings.HasSuffix(raw, suffix) {
		return raw
	}
	if !strings.Contains(raw, quote) {
		return raw + suffix
	}

	base := strings.Trim(strings.ReplaceAll(raw, quote, ""), "/:-_")
	if base == "" {
		return ""
	}
	return base + suffix
}

// MarketID переводит BTC/USDT:USDT в биржевой id BTCUSDT.
func MarketID(symbol string) string {
	base, rest, ok := strings.Cut(symbol, "/")
	if !ok {
		return symbol
	}
	quote, _, _ := strings.Cut(rest, ":")
	return base + quote
}

// SplitSymbol разбирает BTC/USDT:USDT на части.
func SplitSymbol(symbol string) (base, quote, settle string, ok bool) {
	base, rest, found := strings.Cut(symbol, "/")
	if !found || base == "" {
		return "", "", "", false
	}
	quote, settle, found = strings.Cut(rest, ":")
	if !found || quote == "" || settle == "" {
		return "", "", "", false
	}
	return base, quote, settle, true
}
