package stocks

import "strings"

// alias maps a substring of the user-entered name to the candidate
// tickers to try, in preference order: primary listing first, alternate
// exchange listings after.
type alias struct {
	fragment   string
	candidates []string
}

// Popular dual-listed assets the dashboard's users actually hold. The
// first matching fragment wins.
var aliases = []alias{
	{"ASML", []string{"ASML", "ASML.AS"}},
	{"NOVO", []string{"NVO", "NOVOB.CO"}},
	{"VUSA", []string{"VUSA.AS", "VUSA.L"}},
	{"S&P", []string{"VUSA.AS", "VUSA.L"}},
	{"SHELL", []string{"SHELL.AS", "SHEL"}},
}

// Resolve maps a user-entered security name to the ordered candidate
// tickers to try. It never returns an empty list: with no alias match
// the sole candidate is the uppercased, trimmed input itself. Candidates
// are tried in order and the first with a nonzero quote wins, so the
// ordering here makes resolution deterministic.
func Resolve(name string) []string {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, a := range aliases {
		if strings.Contains(name, a.fragment) {
			return a.candidates
		}
	}
	return []string{name}
}

// Exchange suffix to trading currency. Tickers without a known suffix
// are assumed to trade in USD.
var suffixCurrencies = []struct {
	suffix   string
	currency string
}{
	{".AS", "EUR"},
	{".CO", "DKK"},
	{".L", "GBP"},
}

// CurrencyFor infers the trading currency from the ticker's exchange
// suffix.
func CurrencyFor(ticker string) string {
	for _, sc := range suffixCurrencies {
		if strings.HasSuffix(ticker, sc.suffix) {
			return sc.currency
		}
	}
	return "USD"
}
