package tensor

import "testing"

func BenchmarkTensorCreation(b *testing.B) {
	shape := Shape{16, 16, 16}

	b.Run("Zeros", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Zeros[float64](shape, 2)
		}
	})

	b.Run("Rand", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Rand[complex128](shape, 2, uint64(i))
		}
	})
}

func BenchmarkIndex(b *testing.B) {
	d := Zeros[float64](Shape{16, 16, 16}, 2)
	idx := []int{3, 7, 11}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.At(idx)
	}
}
