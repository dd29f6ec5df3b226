package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(0); got != 0 {
		t.Errorf("IntToUint32(0) = %d, want 0", got)
	}
	if got := IntToUint32(42); got != 42 {
		t.Errorf("IntToUint32(42) = %d, want 42", got)
	}
}

func TestIntToUint32_PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a negative input")
		}
	}()
	IntToUint32(-1)
}

func TestIntToUint16(t *testing.T) {
	if got := IntToUint16(65535); got != 65535 {
		t.Errorf("IntToUint16(65535) = %d, want 65535", got)
	}
}

func TestIntToUint16_PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a negative input")
		}
	}()
	IntToUint16(-1)
}

func TestIntToUint16_PanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an input above math.MaxUint16")
		}
	}()
	IntToUint16(math.MaxUint16 + 1)
}

func TestUint64ToUint32(t *testing.T) {
	if got := Uint64ToUint32(math.MaxUint32); got != math.MaxUint32 {
		t.Errorf("Uint64ToUint32(MaxUint32) = %d, want %d", got, uint32(math.MaxUint32))
	}
}

func TestUint64ToUint32_PanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an input above math.MaxUint32")
		}
	}()
	Uint64ToUint32(math.MaxUint32 + 1)
}

func TestUint64ToUint16_PanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an input above math.MaxUint16")
		}
	}()
	Uint64ToUint16(math.MaxUint16 + 1)
}
