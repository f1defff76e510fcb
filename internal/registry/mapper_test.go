package registry

import (
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestMapper_Lifecycle(t *testing.T) {
	m := NewMapper(Swedish, nil, nil)
	if m.Initialized() {
		t.Fatalf("new mapper must be uninitialized")
	}
	mustPanic(t, "convert before initialize", func() { m.Convert("a;b;c") })

	n := m.Initialize("Hepp1;Utgivare;ISIN;")
	if n != 3 || !m.Initialized() {
		t.Fatalf("Initialize returned %d, initialized=%v", n, m.Initialized())
	}

	tr := m.Convert("Test1;Swedish Match;SE0000310336")
	if tr.Issuer != "Swedish Match" || tr.ISIN != "SE0000310336" {
		t.Fatalf("unexpected transaction: %+v", tr)
	}

	mustPanic(t, "initialize twice", func() { m.Initialize("Emittent") })
}

func TestMapper_CustomTable(t *testing.T) {
	table := HeaderTable{
		Swedish: {{Issuer, "Bolag"}, {Price, "Kurs"}},
	}
	m := NewMapper(Swedish, table, nil)
	m.Initialize("Bolag;Kurs;Emittent")

	if got := m.Columns().Mapped(); got != 2 {
		t.Fatalf("custom table should map 2 columns, got %d", got)
	}
	tr := m.Convert("Acme;12,5;ignored")
	if tr.Issuer != "Acme" || tr.Price != 12.5 {
		t.Fatalf("unexpected transaction: %+v", tr)
	}
}

func TestMapper_ConvertIsStableAcrossCalls(t *testing.T) {
	m := NewMapper(English, nil, nil)
	m.Initialize(headerFor(English))

	first := m.Convert(englishRow("Issuer A", "10", "1.5"))
	_ = m.Convert(englishRow("Issuer B", "20", "2.5"))
	again := m.Convert(englishRow("Issuer A", "10", "1.5"))
	if first != again {
		t.Fatalf("conversion depends on earlier lines:\n%+v\n%+v", first, again)
	}
}
