package cv

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		want     string
		wantErr  bool
	}{
		{"plain txt", "Five years of Go experience.", "cv.txt", "Five years of Go experience.", false},
		{"markdown", "# Resume\n\nBackend engineer.", "cv.md", "# Resume\n\nBackend engineer.", false},
		{"no extension", "raw text", "cv", "raw text", false},
		{"unsupported format", "binarydata", "cv.pdf", "", true},
		{"empty file", "   \n\t  ", "cv.txt", "", true},
		{"invalid utf-8", "abc\xff\xfe", "cv.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(strings.NewReader(tt.content), tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}
