package fileutil

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := ioutil.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name string
		fn   func(string) bool
		path string
		want bool
	}{
		{"FileExists file", FileExists, file, true},
		{"FileExists dir", FileExists, dir, false},
		{"FileExists missing", FileExists, missing, false},
		{"DirExists dir", DirExists, dir, true},
		{"DirExists file", DirExists, file, false},
		{"DirExists missing", DirExists, missing, false},
		{"PathExists file", PathExists, file, true},
		{"PathExists dir", PathExists, dir, true},
		{"PathExists missing", PathExists, missing, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.path); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
