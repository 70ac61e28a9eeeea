package vim

// MaxCount caps accumulated and combined counts.
const MaxCount = 99999999

// CountState tracks count prefix accumulation during composition.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count.
// Returns true if the digit was accepted.
// Only accepts ASCII digits 0-9.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}

	digit := int(r - '0')

	// A leading '0' is the line start motion
	if !c.Active && digit == 0 {
		return false
	}

	c.Active = true

	if c.Value > (MaxCount-digit)/10 {
		c.Value = MaxCount
		return true
	}

	c.Value = c.Value*10 + digit
	return true
}

// Get returns the effective count (1 if no count was specified).
func (c CountState) Get() int {
	if !c.Active || c.Value <= 0 {
		return 1
	}
	return c.Value
}

// Explicit returns the count and whether one was typed.
func (c CountState) Explicit() (int, bool) {
	if !c.Active {
		return 0, false
	}
	return c.Value, true
}

// IsCountStart returns true if the character could start a count.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// IsCountDigit returns true if the character is a digit valid in a count.
func IsCountDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// CombineCounts multiplies two counts together with overflow protection.
// Absent counts (zero or negative) count as 1, so "2d3w" deletes 6 words
// and "d3w" deletes 3.
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 {
		count1 = 1
	}
	if count2 <= 0 {
		count2 = 1
	}

	if count1 > MaxCount/count2 {
		return MaxCount
	}

	return count1 * count2
}
