// Package timezone pins every calendar computation to APP_TIMEZONE.
//
// Booking days, availability and playdate "upcoming" checks all compare
// start-of-day values, so they must agree on one location:
//
//	today := timezone.Today()
//	nights := timezone.DaysBetween(start, end)
//	day, err := timezone.Parse(constant.DayFormat, "2024-06-01")
//
// Unknown or empty zone names fall back to UTC at package init.
package timezone
