// Package for calendar aware time processing.
//
// The core types in this package are [Time] and [Calendar]. [Time] is an enhanced wrapper of [time.Time] that knows
// how to find calendar boundaries and do calendar arithmetic in its own location, e.g.,
//
//	var monday time.Time = atom.WrapTime(time.Now()).StartOfISOWeek().Unwrap()
//
// [Calendar] binds a location and a [Locale] together. It formats and parses times using a pattern language with
// tokens such as `YYYY`, `MMM`, `D`, `h`, `A` and `[escaped text]`:
//
//	cal := atom.NewCalendar(time.UTC, atom.English())
//	cal.Format(cal.Time(1710498600000), "MMM D, YYYY, h:mm:ss A") // "Mar 15, 2024, 10:30:00 AM"
//
// Month, quarter and year arithmetic clamps the day of month, e.g., Jan 31 plus one month is Feb 29 in 2024.
//
// Differences truncate toward zero. Month based differences are interpolated between anchors, so that
// Jan 31 to Feb 29 is exactly one month.
//
// Instants are limited to ±[MaxUnixMilli] milliseconds around the epoch, see [Time.IsValid].
package atom
