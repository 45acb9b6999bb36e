package jsonsift

// A Colorizer wraps the tokens printed by an Encoder in terminal color codes.
// A nil *Colorizer is valid and prints everything unadorned.
type Colorizer struct {
	KeyColorCode     []byte
	StringColorCode  []byte
	NumberColorCode  []byte
	LiteralColorCode []byte // true, false and null
	ResetCode        []byte
}

func (c *Colorizer) PrintKey(p Printer, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	c.printColored(p, c.KeyColorCode, b)
}

func (c *Colorizer) PrintString(p Printer, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	c.printColored(p, c.StringColorCode, b)
}

func (c *Colorizer) PrintNumber(p Printer, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	c.printColored(p, c.NumberColorCode, b)
}

func (c *Colorizer) PrintLiteral(p Printer, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	c.printColored(p, c.LiteralColorCode, b)
}

func (c *Colorizer) printColored(p Printer, code, b []byte) {
	p.PrintBytes(code)
	p.PrintBytes(b)
	p.PrintBytes(c.ResetCode)
}
