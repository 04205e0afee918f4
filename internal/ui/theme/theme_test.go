package theme

import "testing"

func TestApplySwapsPalette(t *testing.T) {
	t.Cleanup(func() { Apply(true) })

	Apply(false)
	if IsDark() {
		t.Fatal("expected light palette")
	}
	if Text != LightPalette.Text {
		t.Errorf("expected light text color")
	}

	Apply(true)
	if !IsDark() || Text != DarkPalette.Text {
		t.Errorf("expected dark palette after Apply(true)")
	}
}

func TestMetricColor(t *testing.T) {
	tests := []struct {
		v    int
		want any
	}{
		{100, Success},
		{76, Success},
		{75, Warning},
		{41, Warning},
		{40, Error},
		{1, Error},
	}
	for _, tt := range tests {
		if got := MetricColor(tt.v); got != tt.want {
			t.Errorf("MetricColor(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
