package models

// Lista fija de monedas aceptadas, separadas por clase de precisión:
// las fiat admiten hasta 2 decimales, las cripto hasta 8.
var fiatCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"JPY": true,
	"CAD": true,
	"AUD": true,
	"CHF": true,
	"CNY": true,
}

var cryptoCurrencies = map[string]bool{
	"BTC":  true,
	"ETH":  true,
	"USDT": true,
	"SOL":  true,
}

// Decimales máximos por clase de moneda
const (
	FiatMaxDecimals   = 2
	CryptoMaxDecimals = 8
)

// IsFiatCurrency indica si el código (ya en mayúsculas) es una moneda fiat.
func IsFiatCurrency(code string) bool {
	return fiatCurrencies[code]
}

// IsCryptoCurrency indica si el código (ya en mayúsculas) es una cripto reconocida.
func IsCryptoCurrency(code string) bool {
	return cryptoCurrencies[code]
}

// IsAllowedCurrency indica si el código pertenece a la lista fija.
func IsAllowedCurrency(code string) bool {
	return fiatCurrencies[code] || cryptoCurrencies[code]
}

// MaxDecimalsFor devuelve los decimales permitidos para el código dado.
func MaxDecimalsFor(code string) int {
	if cryptoCurrencies[code] {
		return CryptoMaxDecimals
	}
	return FiatMaxDecimals
}
