package services

import "regexp"

// Recognizes the common YouTube URL shapes: youtu.be short links, /v/,
// /u/<n>/, /embed/ and watch?v= URLs. The identifier is group 2.
var videoIDRegex = regexp.MustCompile(`^.*(youtu\.be/|v/|/u/\w/|embed/|watch\?)\??v?=?([^#&?]*).*`)

// ExtractVideoID pulls the 11-character video identifier out of a
// YouTube URL. The boolean is false when the URL does not contain one.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDRegex.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return "", false
	}
	return m[2], true
}
