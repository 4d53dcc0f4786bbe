package models

import (
	"reflect"
	"testing"
)

func stations(pairs ...any) []Station {
	var result []Station
	for i := 0; i < len(pairs); i += 2 {
		result = append(result, Station{Frequency: pairs[i].(Frequency), Name: pairs[i+1].(string)})
	}
	return result
}

func frequencies(list []Station) []Frequency {
	var result []Frequency
	for _, s := range list {
		result = append(result, s.Frequency)
	}
	return result
}

func TestByFrequency(t *testing.T) {
	a := Station{Frequency: 985, Name: "A"}
	b := Station{Frequency: 985, Name: "B", URL: "http://b"}
	c := Station{Frequency: 1017, Name: "A"}

	if ByFrequency(a) != ByFrequency(b) {
		t.Error("stations with equal frequency should share a key")
	}
	if ByFrequency(a) == ByFrequency(c) {
		t.Error("stations with different frequency should not share a key")
	}
}

func TestByContent(t *testing.T) {
	key := ByContent(MaxNameLength)

	t.Run("names equal after truncation", func(t *testing.T) {
		a := Station{Frequency: 985, Name: "Radio Alpha Prime"}
		b := Station{Frequency: 985, Name: "Radio Alpha Pri"}
		if key(a) != key(b) {
			t.Error("expected equal content keys")
		}
	})

	t.Run("names differ within limit", func(t *testing.T) {
		a := Station{Frequency: 985, Name: "New Name Here!!"}
		b := Station{Frequency: 985, Name: "Old Name Here!!"}
		if key(a) == key(b) {
			t.Error("expected different content keys")
		}
	})

	t.Run("frequency differs", func(t *testing.T) {
		a := Station{Frequency: 985, Name: "Radio"}
		b := Station{Frequency: 986, Name: "Radio"}
		if key(a) == key(b) {
			t.Error("expected different content keys")
		}
	})

	t.Run("different lengths coexist", func(t *testing.T) {
		a := Station{Frequency: 985, Name: "Radio One"}
		b := Station{Frequency: 985, Name: "Radio Two"}
		if ByContent(5)(a) != ByContent(5)(b) {
			t.Error("expected equal keys at length 5")
		}
		if ByContent(9)(a) == ByContent(9)(b) {
			t.Error("expected different keys at length 9")
		}
	})
}

func TestExcept(t *testing.T) {
	tt := []struct {
		name string
		a    []Station
		b    []Station
		want []Frequency
	}{
		{name: "empty inputs", want: nil},
		{name: "nothing to remove", a: stations(Frequency(985), "A", Frequency(1017), "B"), want: []Frequency{985, 1017}},
		{name: "removes matching keys", a: stations(Frequency(985), "A", Frequency(1017), "B"), b: stations(Frequency(985), "Other"), want: []Frequency{1017}},
		{name: "distinct by key", a: stations(Frequency(985), "A", Frequency(985), "A2", Frequency(1017), "B"), want: []Frequency{985, 1017}},
		{name: "all removed", a: stations(Frequency(985), "A"), b: stations(Frequency(985), "A"), want: nil},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := frequencies(Except(tc.a, tc.b, ByFrequency))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Except() = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("keeps first occurrence", func(t *testing.T) {
		got := Except(stations(Frequency(985), "First", Frequency(985), "Second"), nil, ByFrequency)
		if len(got) != 1 || got[0].Name != "First" {
			t.Errorf("expected only the first occurrence, got %v", got)
		}
	})
}

func TestIntersect(t *testing.T) {
	a := stations(Frequency(985), "Ref A", Frequency(1017), "Ref B", Frequency(985), "Ref A dup", Frequency(1040), "Ref C")
	b := stations(Frequency(1040), "Local C", Frequency(985), "Local A")

	got := Intersect(a, b, ByFrequency)
	if !reflect.DeepEqual(frequencies(got), []Frequency{985, 1040}) {
		t.Fatalf("unexpected intersection: %v", got)
	}
	if got[0].Name != "Ref A" || got[1].Name != "Ref C" {
		t.Errorf("expected elements taken from the first collection, got %v", got)
	}

	if got := Intersect(a, nil, ByFrequency); len(got) != 0 {
		t.Errorf("expected empty intersection with empty collection, got %v", got)
	}
}

func TestFilterBand(t *testing.T) {
	in := stations(Frequency(800), "Low", Frequency(875), "Edge low", Frequency(985), "Mid", Frequency(1080), "Edge high", Frequency(1100), "High")
	got := frequencies(FilterBand(in))
	want := []Frequency{875, 985, 1080}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterBand() = %v, want %v", got, want)
	}
}
