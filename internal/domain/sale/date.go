package sale

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	errDateFormat = errors.New("formato de fecha no reconocido")
	errFutureDate = errors.New("la fecha no puede ser futura")
)

// ParseDate interpreta la fecha de una venta. Acepta DD/MM/YY, DD/MM/YYYY y YYYY-MM-DD;
// un año de dos dígitos se interpreta como 20YY. La fecha no puede ser posterior al día de now.
// Devuelve la fecha a medianoche UTC.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	var (
		d   time.Time
		err error
	)
	if strings.Contains(s, "-") {
		d, err = time.Parse("2006-01-02", s)
	} else {
		d, err = parseSlashDate(s)
	}
	if err != nil {
		return time.Time{}, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return time.Time{}, errFutureDate
	}
	return d, nil
}

func parseSlashDate(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, errDateFormat
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, errDateFormat
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if year >= 0 && year < 100 {
		year += 2000
	}
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, errDateFormat
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza 31/02 a marzo: se rechaza.
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, errDateFormat
	}
	return d, nil
}
