package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout формат календарной даты без времени
const DateLayout = "2006-01-02"

// Date календарная дата (YYYY-MM-DD) без времени и часового пояса.
// Используется для дат заезда/выезда и окон действия тарифов,
// чтобы исключить ошибки сравнения из-за компоненты времени.
type Date struct {
	t time.Time
}

// NewDate создает дату из года, месяца и дня
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDateFromTime создает дату, отбрасывая компоненту времени
func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// NewDateFromString парсит дату из строки формата YYYY-MM-DD
func NewDateFromString(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDateFromTime(t), nil
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time возвращает полночь UTC этой даты
func (d Date) Time() time.Time {
	return d.t
}

// IsZero проверяет, что дата не задана
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before строго раньше other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After строго позже other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal та же календарная дата
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays возвращает дату, сдвинутую на days дней (days может быть отрицательным)
func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// DaysUntil количество дней от d до other (other - d)
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Year год даты
func (d Date) Year() int {
	return d.t.Year()
}

// Month месяц даты
func (d Date) Month() time.Month {
	return d.t.Month()
}

// MarshalJSON сериализует дату как строку "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON парсит дату из строки "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для записи в БД
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// NullDate nullable-вариант Date для сканирования колонок,
// допускающих NULL (окна действия спецтарифов)
type NullDate struct {
	Date  Date
	Valid bool
}

// Scan реализует sql.Scanner
func (n *NullDate) Scan(src interface{}) error {
	if src == nil {
		n.Date, n.Valid = Date{}, false
		return nil
	}
	if err := n.Date.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value реализует driver.Valuer
func (n NullDate) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Date.Value()
}

// Scan реализует sql.Scanner для чтения из БД
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateFromTime(v)
		return nil
	case []byte:
		parsed, err := NewDateFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := NewDateFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into types.Date", src)
	}
}
