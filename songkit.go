// Package songkit groups tools to clean, convert, merge and validate song
// lyric and bible text collections.
package songkit

const (
	Version = "0.3.1"
	AppName = "songkit"
)
