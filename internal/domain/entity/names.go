package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName recorta espacios y normaliza a Unicode NFC, de modo que
// "Café" compuesto y descompuesto cuenten como el mismo nombre.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
