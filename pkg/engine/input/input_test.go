package input

import "testing"

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"\n", CommandStep},
		{"", CommandStep},
		{"q\n", CommandQuit},
		{"QUIT\n", CommandQuit},
		{"r\n", CommandRun},
		{"run\n", CommandRun},
		{"c\n", CommandRun},
		{"continue\n", CommandRun},
		{"  r  \n", CommandRun},
		{"gibberish\n", CommandStep},
	}
	for _, c := range cases {
		if got := ParseCommand(c.line); got != c.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}
