package vim

// IsValidRegister returns true if the register name may follow ".
func IsValidRegister(name rune) bool {
	switch {
	case name == '"':
		return true
	case name >= 'a' && name <= 'z':
		return true
	case name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '-', name == '_':
		return true
	case name == '+', name == '*':
		return true
	default:
		return false
	}
}

// IsAppendRegister reports whether writing to the register appends (A-Z).
func IsAppendRegister(name rune) bool {
	return name >= 'A' && name <= 'Z'
}

// IsBlackHole reports whether the register discards writes.
func IsBlackHole(name rune) bool {
	return name == '_'
}
