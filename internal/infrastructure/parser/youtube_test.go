package parser

import "testing"

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/123456", "", false},
		{"https://cloud.mail.ru/public/abc/def", "", false},
		{"not a url at all", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
	}

	for _, tt := range tests {
		id, err := ExtractYouTubeID(tt.url)
		if tt.wantOK {
			if err != nil {
				t.Errorf("ExtractYouTubeID(%q) unexpected error: %v", tt.url, err)
				continue
			}
			if id != tt.wantID {
				t.Errorf("ExtractYouTubeID(%q) = %q, want %q", tt.url, id, tt.wantID)
			}
		} else if err == nil {
			t.Errorf("ExtractYouTubeID(%q) = %q, want error", tt.url, id)
		}
	}
}
