package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Форматирование
	FmtInfo              Code = 1000
	CodeBraceEditSkipped Code = 1001
	CodeUnterminated     Code = 1002
	CodeChecksumMismatch Code = 1003
	CodeLineTooLong      Code = 1004

	// Ввод-вывод
	IOInfo       Code = 4000
	CodeIO       Code = 4001
	CodeEncoding Code = 4002

	// Настройки
	CfgInfo            Code = 5000
	CodeOptionsFile    Code = 5001
	CodeUnknownGrammar Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	FmtInfo:              "Formatter information",
	CodeBraceEditSkipped: "Brace edit skipped",
	CodeUnterminated:     "Unterminated construct at end of file",
	CodeChecksumMismatch: "Formatted content differs from input",
	CodeLineTooLong:      "Line exceeds max code length",
	IOInfo:               "I/O information",
	CodeIO:               "I/O error",
	CodeEncoding:         "Encoding error",
	CfgInfo:              "Configuration information",
	CodeOptionsFile:      "Invalid options file",
	CodeUnknownGrammar:   "Unknown source grammar",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
