// Package timezone provides timezone and calendar-date utilities for the application.
//
// Usage Examples:
//
//  1. Current time and conversions:
//     now := timezone.Now()
//     appTime := timezone.ToAppTime(someTime)
//
//  2. Calendar dates, as used for rental periods:
//     start, err := timezone.ParseDate("2024-01-02")
//     days := timezone.DaysBetween(start, end)
//     today := timezone.Today(timezone.SystemClock{})
//
//  3. Deterministic time in tests:
//     clock := timezone.FixedClock{At: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)}
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is initialized when the package is imported. Use IANA names such as
// "Asia/Kolkata" or "UTC".
package timezone
