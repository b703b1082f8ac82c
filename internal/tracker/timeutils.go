package tracker

import (
	"fmt"
	"time"
)

// DefaultTimezone is the zone the tracker pins its day boundaries to when
// no other zone is configured.
const DefaultTimezone = "Asia/Shanghai"

// Locale holds the strings DisplayName needs.
type Locale struct {
	Today     string    `yaml:"today" json:"today"`
	Yesterday string    `yaml:"yesterday" json:"yesterday"`
	Weekdays  [7]string `yaml:"weekdays" json:"weekdays"` // indexed by time.Weekday, Sunday first
	// DateFormat receives month, day and weekday name, in that order.
	DateFormat string `yaml:"dateFormat" json:"dateFormat"`
}

// EnglishLocale is the default localisation table.
var EnglishLocale = Locale{
	Today:      "Today",
	Yesterday:  "Yesterday",
	Weekdays:   [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	DateFormat: "%[1]d/%[2]d %[3]s",
}

// ChineseLocale renders "今天", "昨天" and "10月18日 周六".
var ChineseLocale = Locale{
	Today:      "今天",
	Yesterday:  "昨天",
	Weekdays:   [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"},
	DateFormat: "%[1]d月%[2]d日 %[3]s",
}

// Locales lists the built-in tables by tag.
var Locales = map[string]Locale{
	"en": EnglishLocale,
	"zh": ChineseLocale,
}

// TimeUtils answers date questions in one fixed timezone, independent of the
// host's local zone.
type TimeUtils struct {
	clock  Clock
	loc    *time.Location
	locale Locale
}

// NewTimeUtils creates a TimeUtils. A nil clock means SystemClock, a nil
// location means UTC.
func NewTimeUtils(clock Clock, loc *time.Location, locale Locale) *TimeUtils {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TimeUtils{clock: clock, loc: loc, locale: locale}
}

// LoadTimezone resolves a zone name, falling back to DefaultTimezone when
// name is empty.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Location returns the fixed timezone.
func (tu *TimeUtils) Location() *time.Location {
	return tu.loc
}

// Now returns the current instant in the fixed timezone.
func (tu *TimeUtils) Now() time.Time {
	return tu.clock.Now().In(tu.loc)
}

// Today returns the current calendar date in the fixed timezone.
func (tu *TimeUtils) Today() Date {
	return DateIn(tu.clock.Now(), tu.loc)
}

// DateOf returns the calendar date of t in the fixed timezone.
func (tu *TimeUtils) DateOf(t time.Time) Date {
	return DateIn(t, tu.loc)
}

// FormatDate formats t as "YYYY-MM-DD" in the fixed timezone.
func (tu *TimeUtils) FormatDate(t time.Time) string {
	return tu.DateOf(t).String()
}

// IsSameDay reports whether a and b fall on the same calendar day in the
// fixed timezone.
func (tu *TimeUtils) IsSameDay(a, b time.Time) bool {
	return tu.DateOf(a) == tu.DateOf(b)
}

// DisplayName returns the localised "today"/"yesterday" label, or a short
// date with its weekday for any other date. It is evaluated against the
// clock on every call.
func (tu *TimeUtils) DisplayName(d Date) string {
	today := tu.Today()
	switch d {
	case today:
		return tu.locale.Today
	case today.AddDays(-1):
		return tu.locale.Yesterday
	}
	return fmt.Sprintf(tu.locale.DateFormat, int(d.Month), d.Day, tu.locale.Weekdays[d.Weekday()])
}
