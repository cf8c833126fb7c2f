package finding

import "testing"

func TestRating_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		want   bool
	}{
		{"critical is valid", RatingCritical, true},
		{"high is valid", RatingHigh, true},
		{"medium is valid", RatingMedium, true},
		{"low is valid", RatingLow, true},
		{"informational is valid", RatingInformational, true},
		{"empty is invalid", Rating(""), false},
		{"info alias is not a rating value", Rating("info"), false},
		{"capitalized is invalid", Rating("High"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rating.IsValid(); got != tt.want {
				t.Errorf("Rating.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in      string
		want    Rating
		wantErr bool
	}{
		{"Critical", RatingCritical, false},
		{"HIGH", RatingHigh, false},
		{" medium ", RatingMedium, false},
		{"low", RatingLow, false},
		{"Informational", RatingInformational, false},
		{"Info", RatingInformational, false},
		{"", "", true},
		{"severe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRating(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRating(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRating(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompareRatings(t *testing.T) {
	tests := []struct {
		name string
		r1   Rating
		r2   Rating
		want int
	}{
		{"critical above high", RatingCritical, RatingHigh, 1},
		{"low below medium", RatingLow, RatingMedium, -1},
		{"equal", RatingInformational, RatingInformational, 0},
		{"invalid below informational", Rating("x"), RatingInformational, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareRatings(tt.r1, tt.r2); got != tt.want {
				t.Errorf("CompareRatings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRating_DisplayName(t *testing.T) {
	for _, r := range AllRatings() {
		if r.DisplayName() == r.String() {
			t.Errorf("DisplayName(%s) should be capitalized", r)
		}
	}
	if got := Rating("x").DisplayName(); got != "x" {
		t.Errorf("DisplayName() = %q, want %q", got, "x")
	}
}

func TestAllRatings(t *testing.T) {
	all := AllRatings()
	if len(all) != 5 {
		t.Fatalf("AllRatings() returned %d ratings, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if CompareRatings(all[i-1], all[i]) <= 0 {
			t.Errorf("AllRatings() not ordered at %d: %s before %s", i, all[i-1], all[i])
		}
	}
}

func TestFixingEffort(t *testing.T) {
	for _, e := range AllFixingEfforts() {
		if !e.IsValid() {
			t.Errorf("%s should be valid", e)
		}
		parsed, err := ParseFixingEffort(e.DisplayName())
		if err != nil || parsed != e {
			t.Errorf("ParseFixingEffort(%q) = %v, %v", e.DisplayName(), parsed, err)
		}
	}
	if _, err := ParseFixingEffort("someday"); err == nil {
		t.Error("ParseFixingEffort(someday) should fail")
	}
	if FixingEffort("x").IsValid() {
		t.Error("unknown effort should be invalid")
	}
}
