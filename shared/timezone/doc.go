// Package timezone keeps every timestamp the hotel handles in one configured zone.
//
// Usage Examples:
//
//  1. Current time in the hotel timezone:
//     now := timezone.Now()
//
//  2. Accepting front-desk input:
//     checkOut, err := timezone.ParseTimestamp("2024-05-01 13:30")
//
//  3. Formatting for responses:
//     formatted := timezone.Format(booking.PlannedCheckOut, time.RFC3339)
//
// The timezone is configured via the APP_TIMEZONE environment variable (default Asia/Bangkok)
// and is initialized when the package is imported. Use IANA timezone database names.
package timezone
