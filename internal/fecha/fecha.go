// Package fecha centraliza el cálculo de la "fecha operacional": el día
// calendario (YYYY-MM-DD) al que se atribuye un evento, calculado en la zona
// horaria de la ruta y nunca en la hora local del servidor o del dispositivo.
package fecha

import "time"

// FormatoFecha is the canonical operational-date layout.
const FormatoFecha = "2006-01-02"

// Resolver returns the IANA timezone to use: the explicit one when present
// and loadable, otherwise the fallback, otherwise UTC.
func Resolver(explicita, fallback string) string {
	if explicita != "" {
		if _, err := time.LoadLocation(explicita); err == nil {
			return explicita
		}
	}
	if fallback != "" {
		if _, err := time.LoadLocation(fallback); err == nil {
			return fallback
		}
	}
	return "UTC"
}

// HoyEn returns today's operational date computed in tz.
func HoyEn(tz string) string {
	return Normalizar(time.Now(), tz)
}

// Normalizar converts an arbitrary instant into its operational date in tz.
// An unloadable tz degrades to UTC rather than failing: a movement with a
// slightly-off date is recoverable, a dropped movement is not.
func Normalizar(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format(FormatoFecha)
}

// NormalizarFechaSola normalizes a date-only string (no time component).
// The instant is anchored at 12:00 UTC before formatting so that timezone
// offsets up to ±12h cannot shift the result across a day boundary.
func NormalizarFechaSola(s, tz string) string {
	d, err := time.Parse(FormatoFecha, s)
	if err != nil {
		return s
	}
	mediodia := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	return Normalizar(mediodia, tz)
}

// HoraEn formats the time-of-day of an instant in tz (fallback UTC).
func HoraEn(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// DiaAnterior returns the operational date n calendar days before fechaStr.
// Anchoring at midday keeps DST transitions (23h/25h days) from skipping or
// repeating a date.
func DiaAnterior(fechaStr string, n int) string {
	d, err := time.Parse(FormatoFecha, fechaStr)
	if err != nil {
		return fechaStr
	}
	mediodia := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	return mediodia.AddDate(0, 0, -n).Format(FormatoFecha)
}
