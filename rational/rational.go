package rational

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors returned by the rational package.
var (
	// ErrSyntax indicates that a string could not be parsed as a fraction.
	ErrSyntax = errors.New("rational: invalid syntax")

	// ErrZeroDenominator indicates a fraction with a zero denominator.
	ErrZeroDenominator = errors.New("rational: zero denominator")
)

// Rat is an immutable exact fraction. The zero value is 0.
type Rat struct {
	r *big.Rat // nil means 0; never mutated after construction
}

var (
	// Zero is the fraction 0.
	Zero = Rat{}

	// One is the fraction 1.
	One = FromInt(1)

	// Half is the fraction 1/2, the rounding boundary of the standard round.
	Half = New(1, 2)
)

// New returns num/den in lowest terms.
// Panics with ErrZeroDenominator if den == 0 (programmer error).
func New(num, den int64) Rat {
	if den == 0 {
		panic(ErrZeroDenominator.Error())
	}

	return Rat{r: big.NewRat(num, den)}
}

// FromInt returns n/1.
func FromInt(n int64) Rat {
	return Rat{r: new(big.Rat).SetInt64(n)}
}

// FromBigInt returns n/1. The argument is copied.
func FromBigInt(n *big.Int) Rat {
	if n == nil {
		return Zero
	}

	return Rat{r: new(big.Rat).SetInt(n)}
}

// FromBigRat returns a Rat holding a copy of x.
func FromBigRat(x *big.Rat) Rat {
	if x == nil {
		return Zero
	}

	return Rat{r: new(big.Rat).Set(x)}
}

// Parse reads "p", "p/q" or a finite decimal such as "1.25".
// Returns ErrSyntax on malformed input.
func Parse(s string) (Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	return Rat{r: r}, nil
}

// val returns the underlying value for read-only use.
func (x Rat) val() *big.Rat {
	if x.r == nil {
		return new(big.Rat)
	}

	return x.r
}

// Big returns a copy of x as *big.Rat.
func (x Rat) Big() *big.Rat { return new(big.Rat).Set(x.val()) }

// Num returns a copy of the numerator in lowest terms.
func (x Rat) Num() *big.Int { return new(big.Int).Set(x.val().Num()) }

// Denom returns a copy of the (positive) denominator in lowest terms.
func (x Rat) Denom() *big.Int { return new(big.Int).Set(x.val().Denom()) }

// Add returns x + y.
func (x Rat) Add(y Rat) Rat { return Rat{r: new(big.Rat).Add(x.val(), y.val())} }

// Sub returns x - y.
func (x Rat) Sub(y Rat) Rat { return Rat{r: new(big.Rat).Sub(x.val(), y.val())} }

// Mul returns x * y.
func (x Rat) Mul(y Rat) Rat { return Rat{r: new(big.Rat).Mul(x.val(), y.val())} }

// Quo returns x / y.
// Panics if y is zero, exactly like big.Rat; callers guard divisors.
func (x Rat) Quo(y Rat) Rat { return Rat{r: new(big.Rat).Quo(x.val(), y.val())} }

// Neg returns -x.
func (x Rat) Neg() Rat { return Rat{r: new(big.Rat).Neg(x.val())} }

// Inv returns 1/x. Panics if x is zero.
func (x Rat) Inv() Rat { return Rat{r: new(big.Rat).Inv(x.val())} }

// Cmp compares x and y and returns -1, 0 or +1.
func (x Rat) Cmp(y Rat) int { return x.val().Cmp(y.val()) }

// Less reports whether x < y.
func (x Rat) Less(y Rat) bool { return x.Cmp(y) < 0 }

// Equal reports whether x == y.
func (x Rat) Equal(y Rat) bool { return x.Cmp(y) == 0 }

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Rat) Sign() int { return x.val().Sign() }

// IsZero reports whether x == 0.
func (x Rat) IsZero() bool { return x.Sign() == 0 }

// IsInt reports whether the denominator of x is 1.
func (x Rat) IsInt() bool { return x.val().IsInt() }

// Max returns the larger of x and y (x on equality).
func Max(x, y Rat) Rat {
	if y.Cmp(x) > 0 {
		return y
	}

	return x
}

// Min returns the smaller of x and y (x on equality).
func Min(x, y Rat) Rat {
	if y.Cmp(x) < 0 {
		return y
	}

	return x
}

// String formats x as "p/q", or "p" when x is an integer.
func (x Rat) String() string {
	v := x.val()
	if v.IsInt() {
		return v.Num().String()
	}

	return v.String()
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (x Rat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; accepts the Parse forms.
func (x *Rat) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v

	return nil
}

// FloatString returns a decimal rendering rounded to prec digits.
// Presentation only.
func (x Rat) FloatString(prec int) string { return x.val().FloatString(prec) }

// Float64 returns the nearest float64. Presentation only; never feed the
// result back into an apportionment computation.
func (x Rat) Float64() float64 {
	f, _ := x.val().Float64()

	return f
}
