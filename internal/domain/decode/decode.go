package decode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrUnknownCode se usa con errors.Is para cualquier código de Withings
// que no pertenece a la enumeración destino.
var ErrUnknownCode = errors.New("unknown code")

// Value devuelve mantissa * 10^exponent en float64.
// Con exponente negativo se divide por 10^-exponent: 70000/1000 da 70 exacto.
func Value(mantissa int64, exponent int) float64 {
	if mantissa == 0 {
		return 0
	}
	if exponent >= 0 {
		return float64(mantissa) * math.Pow10(exponent)
	}
	return float64(mantissa) / math.Pow10(-exponent)
}

// Error identifica el código no reconocido y el campo del payload de donde vino.
type Error struct {
	Field string
	Kind  string
	Code  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode: unknown %s %s in field %q", e.Kind, e.Code, e.Field)
}

func (e *Error) Unwrap() error { return ErrUnknownCode }

// UnknownCode arma un *Error para códigos enteros.
func UnknownCode(field, kind string, code int) *Error {
	return &Error{Field: field, Kind: kind, Code: strconv.Itoa(code)}
}

// UnknownValue arma un *Error para códigos string (p.ej. tipo de dispositivo).
func UnknownValue(field, kind, value string) *Error {
	return &Error{Field: field, Kind: kind, Code: strconv.Quote(value)}
}
