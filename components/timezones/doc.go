// Package timezones provides a deterministic list of IANA zone names and
// turns it into choices for a searchable dropdown.
//
// The backing data is embedded from data/zones.txt. Search ranks prefix
// matches ahead of substring matches and honours a result limit.
package timezones
