package order

import "strconv"

// FormatPrice renders an amount in integer currency units as es-CO pesos:
// "$" prefix, "." thousands separator, no decimals.
func FormatPrice(amount int64) string {
	sign := ""
	abs := uint64(amount)
	if amount < 0 {
		sign = "-"
		abs = -abs
	}
	digits := strconv.FormatUint(abs, 10)

	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	return sign + "$" + string(out)
}

// FormatOptionalPrice returns "" and false when the product has no price.
func FormatOptionalPrice(price *int64) (string, bool) {
	if price == nil {
		return "", false
	}
	return FormatPrice(*price), true
}
