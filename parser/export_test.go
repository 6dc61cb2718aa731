package parser

// White-box hooks for the tests in parser_test.
var (
	ScanSpaces          = scanSpaces
	ScanWord            = scanWord
	ScanNumber          = scanNumber
	ScanString          = scanString
	ReadMultiplierRange = readMultiplierRange
	ReadTypeRange       = readTypeRange
)
