package fnmatch

// classNode is a POSIX bracket expression: "[...]". It holds a resolved
// 256-bit membership mask rather than the raw items, so matching a byte is
// O(1) regardless of how the class was written (ranges, POSIX classes,
// literal bytes all collapse into the same bitset at parse time).
type classNode struct {
	negate bool
	set    charSet
}

func (c *classNode) match(b byte, fold bool) bool {
	in := c.set.has(b)
	if !in && fold {
		in = c.set.has(asciiLower(b)) || c.set.has(asciiUpper(b))
	}
	if c.negate {
		return !in
	}
	return in
}

func asciiUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

var posixClasses = map[string]func(byte) bool{
	"alpha":  func(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') },
	"digit":  func(b byte) bool { return b >= '0' && b <= '9' },
	"alnum":  func(b byte) bool { return isAlphaByte(b) || isDigitByte(b) },
	"upper":  func(b byte) bool { return b >= 'A' && b <= 'Z' },
	"lower":  func(b byte) bool { return b >= 'a' && b <= 'z' },
	"space":  func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r' },
	"blank":  func(b byte) bool { return b == ' ' || b == '\t' },
	"punct":  isPunctByte,
	"cntrl":  func(b byte) bool { return b < 0x20 || b == 0x7f },
	"print":  func(b byte) bool { return b >= 0x20 && b < 0x7f },
	"graph":  func(b byte) bool { return b > 0x20 && b < 0x7f },
	"xdigit": func(b byte) bool { return isDigitByte(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') },
}

func isAlphaByte(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }
func isPunctByte(b byte) bool {
	return (b >= 0x21 && b <= 0x2f) || (b >= 0x3a && b <= 0x40) || (b >= 0x5b && b <= 0x60) || (b >= 0x7b && b <= 0x7e)
}
