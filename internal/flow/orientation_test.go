package flow

import (
	"errors"
	"testing"
)

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Constraints
		wantErr bool
	}{
		{name: "loose", c: Loose(10, 20)},
		{name: "fixed", c: Fixed(10, 20)},
		{name: "unbounded", c: Loose(Infinity, Infinity)},
		{name: "width inverted", c: Constraints{MinWidth: 11, MaxWidth: 10, MaxHeight: 5}, wantErr: true},
		{name: "height inverted", c: Constraints{MaxWidth: 10, MinHeight: 6, MaxHeight: 5}, wantErr: true},
		{name: "negative max", c: Constraints{MaxWidth: -1, MaxHeight: 5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConstraints) {
					t.Fatalf("expected ErrInvalidConstraints, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConstrain(t *testing.T) {
	c := Constraints{MinWidth: 5, MaxWidth: 10, MinHeight: 2, MaxHeight: 4}
	if got := c.ConstrainWidth(20); got != 10 {
		t.Fatalf("width above max: got %d", got)
	}
	if got := c.ConstrainWidth(1); got != 5 {
		t.Fatalf("width below min: got %d", got)
	}
	if got := c.ConstrainHeight(3); got != 3 {
		t.Fatalf("height in range: got %d", got)
	}
}

func TestOrientationIndependentConstraintsRoundTrip(t *testing.T) {
	c := Constraints{MinWidth: 1, MaxWidth: 2, MinHeight: 3, MaxHeight: 4}

	row := NewOrientationIndependentConstraints(c, Horizontal)
	if row.MainAxisMin != 1 || row.MainAxisMax != 2 || row.CrossAxisMin != 3 || row.CrossAxisMax != 4 {
		t.Fatalf("row projection: %+v", row)
	}
	column := NewOrientationIndependentConstraints(c, Vertical)
	if column.MainAxisMin != 3 || column.MainAxisMax != 4 || column.CrossAxisMin != 1 || column.CrossAxisMax != 2 {
		t.Fatalf("column projection: %+v", column)
	}
	for _, o := range []Orientation{Horizontal, Vertical} {
		if got := NewOrientationIndependentConstraints(c, o).ToBoxConstraints(o); got != c {
			t.Fatalf("%s round trip: got %v, want %v", o, got, c)
		}
	}
}

func TestWithHelpersCopy(t *testing.T) {
	oc := OrientationIndependentConstraints{MainAxisMax: 50, CrossAxisMax: 20}
	changed := oc.WithMainAxisMin(10).WithMainAxisMax(40).WithCrossAxisMin(5)
	if oc.MainAxisMin != 0 || oc.MainAxisMax != 50 || oc.CrossAxisMin != 0 {
		t.Fatalf("original was mutated: %+v", oc)
	}
	want := OrientationIndependentConstraints{MainAxisMin: 10, MainAxisMax: 40, CrossAxisMin: 5, CrossAxisMax: 20}
	if changed != want {
		t.Fatalf("got %+v, want %+v", changed, want)
	}
}

func TestConstraintsString(t *testing.T) {
	got := Loose(30, Infinity).String()
	if got != "Constraints(w=0..30, h=0..inf)" {
		t.Fatalf("unexpected string %q", got)
	}
	if Horizontal.String() != "row" || Vertical.String() != "column" {
		t.Fatal("unexpected orientation names")
	}
	if RTL.String() != "rtl" || LTR.String() != "ltr" {
		t.Fatal("unexpected direction names")
	}
}
