package fleet

import "testing"

func TestClassifyMimetype(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", "image"},
		{"image/jpeg", "image"},
		{"video/mp4", "video"},
		{"video/webm", "video"},
		{"application/pdf", "application/pdf"},
		{"text/html", "text/html"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := classifyMimetype(tt.contentType); got != tt.want {
			t.Errorf("classifyMimetype(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestResolveContentType(t *testing.T) {
	tests := []struct {
		name string
		file FileSource
		want string
	}{
		{"declared wins", FileSource{Filename: "a.png", ContentType: "video/mp4"}, "video/mp4"},
		{"guessed from extension", FileSource{Filename: "a.png"}, "image/png"},
		{"unknown extension falls back", FileSource{Filename: "a.xyz123"}, "application/octet-stream"},
		{"no filename falls back", FileSource{}, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveContentType(&tt.file); got != tt.want {
				t.Errorf("resolveContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildURLPayload(t *testing.T) {
	meta := AssetMetadata{
		Name:      "Dashboard",
		StartDate: "2026-03-01",
		EndDate:   "2026-04-01",
		Duration:  15,
		URL:       "https://dash.example.com",
	}

	p := buildURLPayload(meta)
	if p.Mimetype != "webpage" || p.Ext != "string" {
		t.Errorf("mimetype/ext = %q/%q", p.Mimetype, p.Ext)
	}
	if p.URI != meta.URL || p.Name != meta.Name || p.Duration != 15 {
		t.Errorf("payload = %+v", p)
	}
}
