package ttfont

import "testing"

func TestReaderBasicReads(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFE, 0x00}
	r := NewReader(buf)

	if got := r.ReadU8(); got != 0x01 {
		t.Fatalf("ReadU8 = %#x, want 0x01", got)
	}
	if got := r.ReadU16(); got != 0x0203 {
		t.Fatalf("ReadU16 = %#x, want 0x0203", got)
	}
	r.Jump(0)
	if got := r.ReadU32(); got != 0x01020304 {
		t.Fatalf("ReadU32 = %#x, want 0x01020304", got)
	}
	if got := r.ReadI16(); got != -2 {
		t.Fatalf("ReadI16 = %d, want -2 (0xFFFE)", got)
	}
}

func TestReaderJumpAndSkip(t *testing.T) {
	buf := []byte{10, 20, 30, 40, 50, 60}
	r := NewReader(buf)
	r.Jump(2)
	if got := r.ReadU8(); got != 30 {
		t.Fatalf("after Jump(2), ReadU8 = %d, want 30", got)
	}
	r.Skip(1)
	if got := r.ReadU8(); got != 50 {
		t.Fatalf("after Skip(1), ReadU8 = %d, want 50", got)
	}
}

// TestReaderBoundsQuirk locks in the reference reader's off-by-one
// conservative bounds check: a read starting exactly at the last valid
// byte still reports EOF (zero), not just a read that starts past the end.
func TestReaderBoundsQuirk(t *testing.T) {
	buf := []byte{0xAA, 0xBB, 0xCC}
	r := NewReader(buf)

	r.Jump(2) // last valid index
	if got := r.ReadU8(); got != 0 {
		t.Fatalf("ReadU8 at cur==len-1 = %#x, want 0 (conservative EOF)", got)
	}

	r.Jump(1)
	if got := r.ReadU8(); got != 0xBB {
		t.Fatalf("ReadU8 at cur==len-2 = %#x, want 0xBB", got)
	}

	r.Jump(10)
	if got := r.ReadU16(); got != 0 {
		t.Fatalf("ReadU16 past EOF = %#x, want 0", got)
	}
	if r.Pos() != 10 {
		t.Fatalf("a failed read must not move the cursor; Pos() = %d, want 10", r.Pos())
	}
}

func TestReaderReadBytesZeroFillsPastEOF(t *testing.T) {
	buf := []byte{1, 2}
	r := NewReader(buf)
	dst := make([]byte, 4)
	for i := range dst {
		dst[i] = 0xFF
	}
	r.ReadBytes(dst)
	for i, b := range dst {
		if b != 0 {
			t.Fatalf("dst[%d] = %#x, want 0 (zero-filled past EOF)", i, b)
		}
	}
}

func TestReaderLenAndPos(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	if r.Pos() != 0 {
		t.Fatalf("Pos() = %d, want 0", r.Pos())
	}
	r.ReadU8()
	if r.Pos() != 1 {
		t.Fatalf("Pos() after one ReadU8 = %d, want 1", r.Pos())
	}
}
