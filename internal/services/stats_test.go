package services

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{"perfect positive", []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10}, 1},
		{"perfect negative", []float64{1, 2, 3, 4, 5}, []float64{10, 8, 6, 4, 2}, -1},
		{"zero variance", []float64{3, 3, 3}, []float64{1, 2, 3}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pearson(tt.xs, tt.ys); !almostEqual(got, tt.want) {
				t.Fatalf("pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRollingMean(t *testing.T) {
	got := rollingMean([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("rollingMean() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("rollingMean()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if rollingMean([]float64{1, 2}, 3) != nil {
		t.Fatal("rollingMean() expected nil for series shorter than window")
	}
}

func TestMaxByValueTieBreak(t *testing.T) {
	m := map[string]float64{"banana": 5, "apple": 5, "cherry": 3}
	key, val, ok := maxByValue(m)
	if !ok {
		t.Fatal("maxByValue() expected ok")
	}
	if key != "apple" || val != 5 {
		t.Fatalf("maxByValue() = (%q, %v), want (%q, %v)", key, val, "apple", 5.0)
	}
	if _, _, ok := maxByValue(nil); ok {
		t.Fatal("maxByValue() expected not ok for empty map")
	}
}

func TestMinByValueTieBreak(t *testing.T) {
	m := map[string]float64{"banana": 2, "apple": 2, "cherry": 9}
	key, val, ok := minByValue(m)
	if !ok {
		t.Fatal("minByValue() expected ok")
	}
	if key != "apple" || val != 2 {
		t.Fatalf("minByValue() = (%q, %v), want (%q, %v)", key, val, "apple", 2.0)
	}
}

func TestClampRatio(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		target float64
		want   float64
	}{
		{"half of target", 30, 60, 0.5},
		{"over target clamps", 90, 60, 1},
		{"zero target", 30, 0, 0},
		{"negative target", 30, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampRatio(tt.value, tt.target); !almostEqual(got, tt.want) {
				t.Fatalf("clampRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}
