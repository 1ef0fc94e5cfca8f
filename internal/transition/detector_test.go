package transition

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		wantNil  bool
		wantFrom int
		wantTo   int
	}{
		{
			name:     "clean drop from 3 to 2",
			counts:   []int{3, 3, 3, 2, 2, 2},
			wantFrom: 3,
			wantTo:   2,
		},
		{
			name:     "gradual drop still a full nap",
			counts:   []int{4, 4, 3, 3, 3, 2, 2, 3, 2, 2},
			wantFrom: 3,
			wantTo:   2,
		},
		{
			name:    "too few days",
			counts:  []int{3, 3, 2, 2},
			wantNil: true,
		},
		{
			name:    "single skipped nap is not a transition",
			counts:  []int{3, 3, 3, 3, 2, 3, 3},
			wantNil: true,
		},
		{
			name:    "rising counts never a transition",
			counts:  []int{2, 2, 2, 3, 3, 3},
			wantNil: true,
		},
		{
			name:    "flat series",
			counts:  []int{2, 2, 2, 2, 2},
			wantNil: true,
		},
		{
			name:    "empty",
			counts:  nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.counts)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Detect(%v) = %+v, want nil", tt.counts, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Detect(%v) = nil, want transition", tt.counts)
			}
			if got.FromNaps != tt.wantFrom || got.ToNaps != tt.wantTo {
				t.Errorf("Detect(%v) = %d -> %d, want %d -> %d", tt.counts, got.FromNaps, got.ToNaps, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestValidateClaim(t *testing.T) {
	t.Run("unsupported claim is downgraded", func(t *testing.T) {
		// No day ever hit 4 naps; the "from 4" claim must be replaced by a
		// statement about the range actually observed.
		got := ValidateClaim(4, 3, []int{2, 2, 2, 3, 2, 2, 2})
		if got.Valid {
			t.Fatal("ValidateClaim() accepted a count never observed")
		}
		want := "nap schedule is stabilizing between 2 and 3 naps per day"
		if got.Statement != want {
			t.Errorf("Statement = %q, want %q", got.Statement, want)
		}
	})

	t.Run("one qualifying day supports the claim", func(t *testing.T) {
		got := ValidateClaim(3, 2, []int{2, 2, 3, 2, 2})
		if !got.Valid {
			t.Errorf("ValidateClaim() = %+v, want valid", got)
		}
	})

	t.Run("only the trailing week counts", func(t *testing.T) {
		// The lone 4 fell out of the 7-day lookback.
		counts := []int{4, 2, 2, 2, 2, 2, 2, 2}
		got := ValidateClaim(4, 3, counts)
		if got.Valid {
			t.Error("ValidateClaim() counted a day outside the lookback")
		}
	})

	t.Run("no data", func(t *testing.T) {
		got := ValidateClaim(3, 2, nil)
		if got.Valid {
			t.Fatal("ValidateClaim() = valid with no data")
		}
		if got.Statement != "not enough logged days to confirm a nap transition" {
			t.Errorf("Statement = %q", got.Statement)
		}
	})
}
