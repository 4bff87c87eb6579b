// Package plan содержит фиксированную таблицу тарифных планов и
// вычисление срока их действия в гражданском часовом поясе сервиса.
package plan

import (
	"strings"
	"time"
	// Встроенная база часовых поясов: контейнер может не иметь /usr/share/zoneinfo.
	_ "time/tzdata"
)

// Коды тарифных планов.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
	// Annual выбирается вебхуком оплаты, но в таблице длительностей его нет.
	Annual = "anual"
)

// TimezoneName — часовой пояс, в котором считаются активация и истечение планов.
const TimezoneName = "America/Sao_Paulo"

var durations = map[string]int{
	Daily:   1,
	Weekly:  7,
	Monthly: 30,
}

var byDays = map[int]string{
	1:  Daily,
	7:  Weekly,
	30: Monthly,
}

var location = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation(TimezoneName)
	if err != nil {
		panic("plan: cannot load timezone " + TimezoneName + ": " + err.Error())
	}
	return loc
}

// Location возвращает часовой пояс сервиса.
func Location() *time.Location {
	return location
}

// Now возвращает текущее время в часовом поясе сервиса, без долей секунды.
func Now() time.Time {
	return In(time.Now()).Truncate(time.Second)
}

// In переводит момент времени в часовой пояс сервиса.
func In(t time.Time) time.Time {
	return t.In(location)
}

// DurationDays возвращает длительность плана в днях.
// ok == false, если для кода нет записи в таблице.
func DurationDays(code string) (int, bool) {
	days, ok := durations[code]
	return days, ok
}

// Known сообщает, есть ли код в таблице длительностей.
func Known(code string) bool {
	_, ok := durations[code]
	return ok
}

// FromDays сопоставляет количество дней коду плана (1, 7, 30).
// Для остальных значений возвращается пустая строка.
func FromDays(days int) string {
	return byDays[days]
}

// ExpiresAt считает момент истечения плана, активированного в activatedAt.
//
// activatedAt приводится к часовому поясу сервиса; к дате прибавляются
// календарные дни, поэтому переходы на летнее время не сдвигают час истечения.
// ok == false, если длительность плана неизвестна.
func ExpiresAt(activatedAt time.Time, code string) (time.Time, bool) {
	days, ok := durations[code]
	if !ok {
		return time.Time{}, false
	}
	return In(activatedAt).AddDate(0, 0, days), true
}

// SelectFromProduct выбирает код плана по названию продукта из вебхука оплаты.
// Возвращает пустую строку, если название не распознано.
func SelectFromProduct(product string) string {
	name := strings.ToLower(product)
	switch {
	case strings.Contains(name, "diari"), strings.Contains(name, "diári"), strings.Contains(name, "daily"):
		return Daily
	case strings.Contains(name, "semanal"), strings.Contains(name, "weekly"):
		return Weekly
	case strings.Contains(name, "mensal"), strings.Contains(name, "monthly"):
		return Monthly
	case strings.Contains(name, "anual"), strings.Contains(name, "annual"):
		return Annual
	default:
		return ""
	}
}
