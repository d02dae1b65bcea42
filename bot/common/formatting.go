package common

import "strconv"

// FormatAmount renders a payment amount, dropping the decimals for whole
// numbers so slips read "100" rather than "100.00".
func FormatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return strconv.FormatInt(int64(amount), 10)
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
