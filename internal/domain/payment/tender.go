package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TenderEntry modela el teclado numérico de entrega de efectivo: dígitos,
// punto decimal, borrar y retroceso. Rechaza un segundo punto decimal y
// rechaza dígitos adicionales cuando ya hay 2 decimales, en lugar de
// truncar texto ya ingresado.
type TenderEntry struct {
	buf []byte
}

// PressDigit intenta agregar un dígito '0'-'9'. Devuelve false si el
// carácter no es un dígito o si ya hay 2 cifras decimales.
func (t *TenderEntry) PressDigit(d byte) bool {
	if d < '0' || d > '9' {
		return false
	}
	if i := strings.IndexByte(string(t.buf), '.'); i >= 0 && len(t.buf)-i-1 >= 2 {
		return false
	}
	t.buf = append(t.buf, d)
	return true
}

// PressPoint intenta agregar el punto decimal. Devuelve false si ya existe.
// Un punto inicial se normaliza como "0.".
func (t *TenderEntry) PressPoint() bool {
	if strings.IndexByte(string(t.buf), '.') >= 0 {
		return false
	}
	if len(t.buf) == 0 {
		t.buf = append(t.buf, '0')
	}
	t.buf = append(t.buf, '.')
	return true
}

// Backspace elimina el último carácter ingresado. Vacío es un no-op.
func (t *TenderEntry) Backspace() {
	if len(t.buf) > 0 {
		t.buf = t.buf[:len(t.buf)-1]
	}
}

// Clear borra toda la entrada.
func (t *TenderEntry) Clear() {
	t.buf = nil
}

// String devuelve el texto tal como se ingresó.
func (t *TenderEntry) String() string {
	return string(t.buf)
}

// AmountFromKeys reproduce una secuencia de teclas del teclado numérico y
// devuelve el monto resultante. Las teclas que el editor rechaza (segundo
// punto, tercer decimal, caracteres no numéricos) se ignoran, igual que en
// el teclado físico.
func AmountFromKeys(keys string) decimal.Decimal {
	var t TenderEntry
	for i := 0; i < len(keys); i++ {
		if keys[i] == '.' {
			t.PressPoint()
		} else {
			t.PressDigit(keys[i])
		}
	}
	return t.Amount()
}

// Amount interpreta la entrada como monto. Entrada vacía o un punto
// colgante valen lo que su prefijo numérico; sin prefijo, 0.
func (t *TenderEntry) Amount() decimal.Decimal {
	s := strings.TrimSuffix(string(t.buf), ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
