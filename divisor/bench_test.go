package divisor_test

import (
	"testing"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
)

// BenchmarkApportion_50x200 measures 200 seats over 50 items of uneven size.
func BenchmarkApportion_50x200(b *testing.B) {
	ws := make([]core.Weight, 50)
	for k := range ws {
		ws[k] = core.MustWeight("", int64(1000+37*k*k))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := divisor.Apportion(ws, 200); err != nil {
			b.Fatal(err)
		}
	}
}
