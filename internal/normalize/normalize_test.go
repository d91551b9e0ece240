// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

func TestToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "author prefix and year stripped",
			in:   "Smith-MachineLearningBasics2020",
			want: "machinelearningbasics",
		},
		{
			name: "spaced author prefix",
			in:   "Smith - Machine Learning Basics",
			want: "machinelearningbasics",
		},
		{
			name: "no dash leaves author segment in place",
			in:   "MachineLearningBasics",
			want: "machinelearningbasics",
		},
		{
			name: "repeated dashes after the first are consumed",
			in:   "Smith--DeepLearning",
			want: "deeplearning",
		},
		{
			name: "et al with period removed",
			in:   "Smith et al.-Attention2017",
			want: "attention",
		},
		{
			name: "et al without period survives the removal step",
			in:   "smith et al attention",
			want: "smithetalattention",
		},
		{
			name: "year runs removed anywhere",
			in:   "report2021draft1999",
			want: "reportdraft",
		},
		{
			name: "non-year 4-digit runs starting with 1 or 2 also removed",
			in:   "protocol2345spec",
			want: "protocolspec",
		},
		{
			name: "digit runs outside 1000-2999 kept until the letter filter",
			in:   "rfc9110notes",
			want: "rfcnotes",
		},
		{
			name: "punctuation and whitespace dropped",
			in:   "Jones - Deep Learning: An Overview (v2)",
			want: "deeplearninganoverviewv",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "only noise",
			in:   "2020 - 1999",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Token(tt.in); got != tt.want {
				t.Errorf("Token(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenIdempotent(t *testing.T) {
	inputs := []string{
		"Smith-MachineLearningBasics2020",
		"Jones - Deep Learning Overview",
		"plain",
		"",
		"et al. et al.",
	}
	for _, in := range inputs {
		once := Token(in)
		if twice := Token(once); twice != once {
			t.Errorf("Token not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestTokenCaseInsensitive(t *testing.T) {
	if Token("Foo-Bar2021") != Token("foo-bar2021") {
		t.Errorf("Token(%q) != Token(%q)", "Foo-Bar2021", "foo-bar2021")
	}
}

func TestTokenTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "abcde"
	}
	got := Token(long)
	if len(got) != 80 {
		t.Errorf("len(Token(long)) = %d, want 80", len(got))
	}
}
