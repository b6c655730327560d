// Package revision picks the newest revision of a test program among the
// candidate files of one directory.
//
// Each file name may embed a revision token. The default token shape is eight
// ASCII digits (a date) immediately followed by two uppercase ASCII letters
// (the minor revision), for example "prog_20231205AC.tes". Tokens are parsed
// first and compared afterwards, so a different token shape only needs a new
// Parser.
package revision
