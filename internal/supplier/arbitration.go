package supplier

import (
	"math"

	"github.com/shopspring/decimal"
)

// UnknownDelayDays is the sentinel lead time used when no supplier quote is
// valid. A zero-day delay must never be synthesized from missing data.
const UnknownDelayDays = math.MaxInt32

// Quote is one supplier's price and lead time for a part. A quote is valid
// only when its price is strictly positive.
type Quote struct {
	Price     decimal.Decimal
	DelayDays int
}

// Valid reports whether the quote carries a usable price.
func (q Quote) Valid() bool {
	return q.Price.IsPositive()
}

// Selected is the arbitrated outcome of comparing supplier quotes.
type Selected struct {
	Price     decimal.Decimal
	DelayDays int
}

// DelayKnown reports whether the selected lead time is real data.
func (s Selected) DelayKnown() bool {
	return s.DelayDays != UnknownDelayDays
}

// SelectQuote picks the economically best of two supplier quotes. With both
// valid the strictly lower price wins; on an exact price tie the lower lead
// time wins. With one valid quote it is taken as-is. With none the result is
// a zero price and the unknown-delay sentinel. The function is total and
// symmetric in its arguments.
func SelectQuote(first, second Quote) Selected {
	switch {
	case first.Valid() && second.Valid():
		if first.Price.LessThan(second.Price) {
			return Selected{Price: first.Price, DelayDays: first.DelayDays}
		}
		if second.Price.LessThan(first.Price) {
			return Selected{Price: second.Price, DelayDays: second.DelayDays}
		}
		if first.DelayDays <= second.DelayDays {
			return Selected{Price: first.Price, DelayDays: first.DelayDays}
		}
		return Selected{Price: second.Price, DelayDays: second.DelayDays}
	case first.Valid():
		return Selected{Price: first.Price, DelayDays: first.DelayDays}
	case second.Valid():
		return Selected{Price: second.Price, DelayDays: second.DelayDays}
	default:
		return Selected{Price: decimal.Zero, DelayDays: UnknownDelayDays}
	}
}
