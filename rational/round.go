package rational

import "math/big"

// Floor returns the largest integer ≤ x.
//
// big.Rat keeps a positive denominator, so Euclidean division of the
// numerator by the denominator is exactly floor for negative values too.
func (x Rat) Floor() *big.Int {
	v := x.val()

	return new(big.Int).Div(v.Num(), v.Denom())
}

// Frac returns x - Floor(x), always in [0, 1).
func (x Rat) Frac() Rat {
	return x.Sub(FromBigInt(x.Floor()))
}

// IsHalf reports whether the fractional part of x is exactly 1/2.
// A reduced fraction ends in 1/2 iff its denominator is 2.
func (x Rat) IsHalf() bool {
	return x.val().Denom().Cmp(big.NewInt(2)) == 0
}

// StandardRound rounds half up: floor(x) when frac(x) < 1/2, floor(x)+1
// otherwise. half reports the boundary case frac(x) == 1/2, where the
// rounding is a convention and the caller must classify a tie.
func (x Rat) StandardRound() (n *big.Int, half bool) {
	n = x.Floor()
	half = x.IsHalf()
	if half || x.Frac().Cmp(Half) > 0 {
		n.Add(n, big.NewInt(1))
	}

	return n, half
}

// StandardRoundInt is StandardRound narrowed to int. Seat counts always fit.
func (x Rat) StandardRoundInt() (n int, half bool) {
	b, half := x.StandardRound()

	return int(b.Int64()), half
}

// FloorInt is Floor narrowed to int.
func (x Rat) FloorInt() int {
	return int(x.Floor().Int64())
}
