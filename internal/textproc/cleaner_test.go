package textproc

import "testing"

var testPublishers = []string{
	"POCKET", "POINTS", "FOLIO", "GALLIMARD", "GRASSET", "SEUIL", "ACTES SUD", "FLAMMARION",
}

var testArtifacts = []string{"QOTIE", "ISBN", "SE"}

func newTestCleaner() *Cleaner {
	return NewCleaner(testPublishers, testArtifacts)
}

func TestCleanLine(t *testing.T) {
	c := newTestCleaner()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "publisher and catalog codes",
			in:   "2453 GALLIMARD Le Montespan Jean Teulé 8820",
			want: "Le Montespan Jean Teulé",
		},
		{
			name: "leading publisher",
			in:   "FOLIO La Grande Arche",
			want: "La Grande Arche",
		},
		{
			name: "multi word publisher",
			in:   "Le Horla ACTES SUD",
			want: "Le Horla",
		},
		{
			name: "disallowed characters become spaces",
			in:   "Le*Petit~Prince",
			want: "Le Petit Prince",
		},
		{
			name: "mid line digits survive",
			in:   "Les 1001 Nuits du Caire",
			want: "Les 1001 Nuits du Caire",
		},
		{
			name: "leading junk stripped",
			in:   "--'Le Rouge et le Noir",
			want: "Le Rouge et le Noir",
		},
		{
			name: "trailing artifact token",
			in:   "Madame Bovary QOTIE",
			want: "Madame Bovary",
		},
		{
			name: "short punctuation run dropped",
			in:   "Germinal -- Zola",
			want: "Germinal Zola",
		},
		{
			name: "ocr noise characters stripped",
			in:   "ÏLe Montespan\x00 Jean\x1f Teulé",
			want: "Le Montespan Jean Teulé",
		},
		{
			name: "whitespace collapsed",
			in:   "  La   Peste   ",
			want: "La Peste",
		},
		{
			name: "empty output is fine",
			in:   "@@@",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanLine(tt.in); got != tt.want {
				t.Errorf("CleanLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanLineIdempotent(t *testing.T) {
	c := newTestCleaner()

	lines := []string{
		"2453 GALLIMARD Le Montespan Jean Teulé 8820",
		"La Grande Arche Laurence Cosse",
		"FOLIO 12345 Notre-Dame de Paris",
		"  --'Voyage au bout de la nuit QOTIE",
		"",
		"1984 George Orwell",
	}

	for _, line := range lines {
		once := c.CleanLine(line)
		if twice := c.CleanLine(once); twice != once {
			t.Errorf("clean not idempotent for %q: first %q, second %q", line, once, twice)
		}
	}
}

func TestCleanLineNoConfiguredTokens(t *testing.T) {
	c := NewCleaner(nil, nil)

	// Publisher and artifact steps become no-ops, the rest still runs.
	got := c.CleanLine("2453 GALLIMARD Le Montespan 8820")
	want := "GALLIMARD Le Montespan"
	if got != want {
		t.Errorf("CleanLine = %q, want %q", got, want)
	}
}
