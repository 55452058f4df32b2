package places

import "testing"

func TestLoad(t *testing.T) {
	tp, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tp.State != "Jalisco" {
		t.Errorf("State = %q, want Jalisco", tp.State)
	}
	if len(tp.Categories) != 4 {
		t.Fatalf("got %d categories, want 4", len(tp.Categories))
	}

	want := []struct {
		category string
		results  int
	}{
		{"Train", 1},
		{"Bed and Breakfast", 3},
		{"Restaurant", 2},
		{"Unknown", 0},
	}
	for i, w := range want {
		got := tp.Categories[i]
		if got.Category != w.category || len(got.Results) != w.results {
			t.Errorf("categories[%d] = %s with %d results, want %s with %d",
				i, got.Category, len(got.Results), w.category, w.results)
		}
	}

	first := tp.Categories[0].Results[0]
	if first.Commerce != "Jose Cuervo Express" || first.Latitude == 0 || first.Longitude == 0 {
		t.Errorf("first place = %+v", first)
	}
}
