package reports

import "time"

// ClaveDia extracts the DD-MM day key from an ISO date string such as
// "2025-03-31T23:30:00.000Z" or "2025-03-31". The year, month and day are
// read positionally from the string on purpose: building a time.Time here
// would normalize into the local zone and can shift the day across
// midnight, which is exactly the bug this report family must not have.
func ClaveDia(fecha string) (string, bool) {
	if len(fecha) < 10 || fecha[4] != '-' || fecha[7] != '-' {
		return "", false
	}
	if !digits(fecha[0:4]) || !digits(fecha[5:7]) || !digits(fecha[8:10]) {
		return "", false
	}
	return fecha[8:10] + "-" + fecha[5:7], true
}

// AnioMes extracts the year and month positionally, same rules as ClaveDia.
func AnioMes(fecha string) (int, int, bool) {
	if len(fecha) < 10 || fecha[4] != '-' || fecha[7] != '-' {
		return 0, 0, false
	}
	if !digits(fecha[0:4]) || !digits(fecha[5:7]) {
		return 0, 0, false
	}
	anio := atoi(fecha[0:4])
	mes := atoi(fecha[5:7])
	if mes < 1 || mes > 12 {
		return 0, 0, false
	}
	return anio, mes, true
}

// MesClave extracts the YYYY-MM month key positionally.
func MesClave(fecha string) (string, bool) {
	if _, _, ok := AnioMes(fecha); !ok {
		return "", false
	}
	return fecha[0:7], true
}

// DiasEnMes returns the number of calendar days in the given month.
func DiasEnMes(anio, mes int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(anio, time.Month(mes)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseTimestamp accepts the handful of timestamp layouts the backend and
// the tracking provider emit.
func ParseTimestamp(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
