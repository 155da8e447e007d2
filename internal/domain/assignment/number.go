package assignment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NumberPrefix prefijo de los números de asignación.
const NumberPrefix = "ASG"

const dayLayout = "20060102"

// DayPrefix devuelve el prefijo del día: "ASG-YYYYMMDD-".
func DayPrefix(at time.Time) string {
	return fmt.Sprintf("%s-%s-", NumberPrefix, at.UTC().Format(dayLayout))
}

// FormatNumber arma ASG-YYYYMMDD-NNN con la secuencia rellenada a 3 dígitos.
// Secuencias mayores a 999 conservan todos sus dígitos.
func FormatNumber(at time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", DayPrefix(at), seq)
}

// ParseNumber separa un número de asignación en su día y su secuencia.
func ParseNumber(number string) (time.Time, int, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != NumberPrefix {
		return time.Time{}, 0, fmt.Errorf("número de asignación inválido: %q", number)
	}
	day, err := time.Parse(dayLayout, parts[1])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("fecha inválida en %q: %w", number, err)
	}
	if len(parts[2]) < 3 {
		return time.Time{}, 0, fmt.Errorf("secuencia inválida en %q", number)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq <= 0 {
		return time.Time{}, 0, fmt.Errorf("secuencia inválida en %q", number)
	}
	return day, seq, nil
}
