package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCurrency = "PHP"

var currencySymbols = map[string]string{
	"PHP": "₱",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"SGD": "S$",
	"MYR": "RM",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount keeps only the digits of s and groups them in thousands.
// It returns "" when s has no digits.
func FormatAmount(s string) (string, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", nil
	}
	n, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: amount %q is out of range", ErrInvalidListing, s)
	}
	return amountPrinter.Sprintf("%d", n), nil
}

// CurrencySymbol maps an ISO code to its symbol; unknown codes print as themselves.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return code
}

// FormatSalary renders "<symbol> <min> - <max>".
func FormatSalary(currency, minAmount, maxAmount string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%s %s - %s", CurrencySymbol(currency), minAmount, maxAmount)
}

// ParseSalary reverses FormatSalary. ok is false for salaries written any other way,
// such as the "$140k - $180k" strings of the starter listings. A prefix that is not a
// known symbol is kept as the code when it looks like one, else DefaultCurrency.
func ParseSalary(salary string) (currency, minAmount, maxAmount string, ok bool) {
	parts := strings.Split(salary, " ")
	if len(parts) < 4 {
		return "", "", "", false
	}
	for code, sym := range currencySymbols {
		if sym == parts[0] {
			return code, parts[1], parts[3], true
		}
	}
	if isCurrencyCode(parts[0]) {
		return parts[0], parts[1], parts[3], true
	}
	return DefaultCurrency, parts[1], parts[3], true
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
