package lasio

import "testing"

func TestResolvedColorDefaultsToFlatYellow(t *testing.T) {
	p := RawPoint{}
	r, g, b := p.ResolvedColor()
	if r != 0xFFFF || g != 0xFFFF || b != 0x0000 {
		t.Errorf("default color = (%x,%x,%x), want (ffff,ffff,0000)", r, g, b)
	}
}

func TestResolvedColorUsesProvidedColor(t *testing.T) {
	p := RawPoint{Color: &RawColor{R: 1, G: 2, B: 3}}
	r, g, b := p.ResolvedColor()
	if r != 1 || g != 2 || b != 3 {
		t.Errorf("resolved color = (%v,%v,%v), want (1,2,3)", r, g, b)
	}
}

func TestMockReaderExhaustion(t *testing.T) {
	m := &MockReader{Pts: []RawPoint{{X: 1}, {X: 2}}}
	if m.NumberOfPoints() != 2 {
		t.Fatalf("NumberOfPoints = %d, want 2", m.NumberOfPoints())
	}
	for i := 0; i < 2; i++ {
		if _, err := m.GetNext(); err != nil {
			t.Fatalf("GetNext %d: unexpected error %v", i, err)
		}
	}
	if _, err := m.GetNext(); err == nil {
		t.Error("expected an error once the mock is exhausted")
	}
}
