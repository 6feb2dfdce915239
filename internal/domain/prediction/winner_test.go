package prediction

import "testing"

func TestExtractWinner_Corpus(t *testing.T) {
	t.Parallel()

	indAus := []string{"India", "Australia"}
	cases := []struct {
		name       string
		status     string
		candidates []string
		want       string
		wantFound  bool
	}{
		{name: "clear win by wickets", status: "India won by 5 wickets", candidates: indAus, want: "India", wantFound: true},
		{name: "clear win by runs", status: "Australia won by 20 runs", candidates: indAus, want: "Australia", wantFound: true},
		{name: "lower case status", status: "india won by 5 wkts", candidates: indAus, want: "India", wantFound: true},
		{name: "beat phrasing mentions both", status: "Australia beat India by 20 runs", candidates: indAus, want: "Australia", wantFound: true},
		{name: "dls suffix", status: "India won by 12 runs (DLS method)", candidates: indAus, want: "India", wantFound: true},
		{name: "tied", status: "Match tied", candidates: indAus},
		{name: "abandoned", status: "Match abandoned without a result", candidates: indAus},
		{name: "no result", status: "No result", candidates: indAus},
		{name: "no result due to rain", status: "No result due to rain, India 45/2", candidates: indAus},
		{name: "drawn test", status: "Match drawn", candidates: indAus},
		{name: "called off", status: "Match called off, Australia did not travel", candidates: indAus},
		{name: "super over decides tie", status: "Match tied (India won the Super Over)", candidates: indAus, want: "India", wantFound: true},
		{name: "tie with mention but no phrase", status: "Match tied, India 180/7", candidates: indAus},
		{name: "empty status", status: "", candidates: indAus},
		{name: "no team mentioned", status: "Result awaited", candidates: indAus},
		{name: "both mentioned without phrase", status: "India vs Australia, result awaited", candidates: indAus},
		{name: "single bare mention", status: "Australia by 20 runs", candidates: indAus, want: "Australia", wantFound: true},
		{name: "name inside another word", status: "Indiana won by 2 runs", candidates: indAus},
		{name: "longer name wins over shadowed shorter", status: "India A won by 3 wickets", candidates: []string{"India", "India A"}, want: "India A", wantFound: true},
		{name: "shorter name phrase with longer mentioned", status: "India beat India A by 40 runs", candidates: []string{"India", "India A"}, want: "India", wantFound: true},
		{name: "both phrased is ambiguous", status: "India won the toss, Australia won by 4 wickets", candidates: indAus},
		{name: "punctuated name", status: "Royal Challengers Bengaluru won by 7 wickets", candidates: []string{"Royal Challengers Bengaluru", "Chennai Super Kings"}, want: "Royal Challengers Bengaluru", wantFound: true},
		{name: "no candidates", status: "India won by 5 wickets"},
	}

	for _, tc := range cases {
		got, found := ExtractWinner(tc.status, tc.candidates)
		if found != tc.wantFound || got != tc.want {
			t.Fatalf("%s: ExtractWinner(%q) = (%q, %v), want (%q, %v)", tc.name, tc.status, got, found, tc.want, tc.wantFound)
		}
	}
}
