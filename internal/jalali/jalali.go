// Package jalali converts Gregorian dates to the Jalali (Persian)
// calendar and renders localized date labels.
package jalali

import (
	"fmt"
	"strings"
	"time"
)

// Date is a Jalali calendar date. Month and Day are 1-indexed.
type Date struct {
	Year  int
	Month int
	Day   int
}

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{
	"یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه", "شنبه",
}

var gregorianMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
var jalaliMonthDays = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

// persianDigits maps ASCII digit i to its Persian glyph.
var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

// FromGregorian converts a Gregorian calendar date to Jalali. The
// conversion uses an epoch offset valid for Gregorian dates from
// 1600-01-01 onward; earlier dates are out of contract.
func FromGregorian(gy, gm, gd int) Date {
	y := gy - 1600
	m := gm - 1
	d := gd - 1

	// Absolute day number since the 1600 epoch, 4/100/400 leap rule.
	dayNo := 365*y + (y+3)/4 - (y+99)/100 + (y+399)/400
	for i := 0; i < m; i++ {
		dayNo += gregorianMonthDays[i]
	}
	if m > 1 && isGregorianLeap(gy) {
		dayNo++
	}
	dayNo += d

	// Shift to the Jalali epoch and decompose the 33-year cycle.
	// Dates before the first Nowruz after 1600 leave jDayNo negative;
	// the decomposition needs floor division, not Go's truncation.
	jDayNo := dayNo - 79
	jNp := jDayNo / 12053
	jDayNo %= 12053
	if jDayNo < 0 {
		jNp--
		jDayNo += 12053
	}

	jy := 979 + 33*jNp + 4*(jDayNo/1461)
	jDayNo %= 1461

	if jDayNo >= 366 {
		jy += (jDayNo - 1) / 365
		jDayNo = (jDayNo - 1) % 365
	}

	for i := 0; i < 11; i++ {
		if jDayNo < jalaliMonthDays[i] {
			return Date{Year: jy, Month: i + 1, Day: jDayNo + 1}
		}
		jDayNo -= jalaliMonthDays[i]
	}
	return Date{Year: jy, Month: 12, Day: jDayNo + 1}
}

// FromTime converts the calendar day of t (local wall clock) to Jalali.
func FromTime(t time.Time) Date {
	return FromGregorian(t.Year(), int(t.Month()), t.Day())
}

func isGregorianLeap(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

// MonthName returns the Persian month name of d.
func (d Date) MonthName() string {
	return monthNames[d.Month-1]
}

// String renders d as YYYY/MM/DD with ASCII digits.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// WeekdayName returns the Persian weekday name for t.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// DateLabel composes the localized "weekday day monthname" label for
// the calendar day of t, e.g. "چهارشنبه ۸ مهر".
func DateLabel(t time.Time, useDigits bool) string {
	d := FromTime(t)
	s := fmt.Sprintf("%s %d %s", WeekdayName(t), d.Day, d.MonthName())
	if useDigits {
		return ToPersianDigits(s)
	}
	return s
}

// ToPersianDigits transliterates ASCII digits in s to Persian glyphs.
// Non-digit characters pass through unchanged.
func ToPersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return persianDigits[r-'0']
		}
		return r
	}, s)
}

// ToASCIIDigits is the inverse mapping, used when parsing log lines
// that were written with Persian digits.
func ToASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '۰' && r <= '۹' {
			return '0' + (r - '۰')
		}
		return r
	}, s)
}
