package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Revision resolution
	RevInfo      Code = 1000
	RevNoToken   Code = 1001
	RevTieBroken Code = 1002

	// Section extraction
	SecInfo          Code = 2000
	SecMissingMarker Code = 2001
	SecHeaderOnly    Code = 2002

	// I/O
	IOInfo        Code = 4000
	IORead        Code = 4001
	IOWrite       Code = 4002
	IOUndecodable Code = 4003
	IOList        Code = 4004

	// Comment rewriting
	CmtInfo      Code = 5000
	CmtRewritten Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:      "Unknown error",
	RevInfo:          "Revision information",
	RevNoToken:       "No revision identifier found in file names",
	RevTieBroken:     "Several files share the newest revision identifier",
	SecInfo:          "Section information",
	SecMissingMarker: "Section marker not found",
	SecHeaderOnly:    "Header-only output written",
	IOInfo:           "I/O information",
	IORead:           "Failed to read file",
	IOWrite:          "Failed to write file",
	IOUndecodable:    "Undecodable text",
	IOList:           "Failed to list directory",
	CmtInfo:          "Comment information",
	CmtRewritten:     "Legacy comment banners rewritten",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("REV%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SEC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
