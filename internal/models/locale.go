package models

// Locale codes accepted for pain translations. The set is closed: a
// translate may only be written in one of these.
const (
	LocaleEnUS = "en_US"
	LocaleIdID = "id_ID"
	LocaleJaJP = "ja_JP"
	LocaleKoKR = "ko_KR"
	LocaleZhCN = "zh_CN"
)

// DefaultLocale is used when picking a pain's default translate for list
// responses.
const DefaultLocale = LocaleEnUS

// Locales lists every supported locale code.
var Locales = []string{
	LocaleEnUS,
	LocaleIdID,
	LocaleJaJP,
	LocaleKoKR,
	LocaleZhCN,
}

// IsValidLocale reports whether code is a supported locale.
func IsValidLocale(code string) bool {
	for _, l := range Locales {
		if l == code {
			return true
		}
	}
	return false
}
