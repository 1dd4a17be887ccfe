package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapses", "Scala 3: Type-level Programming!", "scala-3-type-level-programming"},
		{"accents stripped", "Propriété Privée", "propriete-privee"},
		{"leading and trailing junk", "  --A Post-- ", "a-post"},
		{"digits kept", "Writing a Python Profiler in 500 Lines", "writing-a-python-profiler-in-500-lines"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, expected %q", tt.title, got, tt.want)
			}
		})
	}
}
