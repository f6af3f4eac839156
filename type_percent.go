package finances

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage where 0.41 means 0.41%.
type Percent float64

// DefaultTransferFee is the fee charged on transfers between accounts.
const DefaultTransferFee Percent = 0.41

var hundred = decimal.NewFromInt(100)

// Of returns p percent of m, exactly.
func (p Percent) Of(m Money) Money {
	return Money{value: m.value.Mul(p.decimal()).Div(hundred)}
}

// decimal uses the shortest representation of p so that 0.41 is exactly 0.41.
func (p Percent) decimal() decimal.Decimal { return decimal.NewFromFloat(float64(p)) }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
