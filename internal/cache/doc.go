// Package cache stores word-API documents on disk, one JSON file per language code.
//
// Entries live under a single root directory (by default <user cache dir>/seme) and
// are named after the language code they hold. Freshness is judged at read time from
// the file's modification time:
//   - a missing file is a miss, not an error
//   - a file older than the TTL is a miss and is left on disk untouched
//   - a fresh file that is not valid JSON is a CorruptError
//
// Writes replace the whole file through a temporary file and a rename, so concurrent
// readers (including other processes) never observe a partially written entry.
package cache
