// Package timezone pins every timestamp the service produces to the zone named
// by APP_TIMEZONE (an IANA name such as "Asia/Jakarta"). Departure dates carry
// no time of day and are read as midnight in that zone, so "departs today"
// means the same thing to the API, the expiry sweep and the database.
//
// The zone loads when the package is imported. An empty or unknown name falls
// back to UTC with a log line rather than failing startup.
package timezone
