package uricomposer

import "testing"

func TestComposePicURI(t *testing.T) {
	tests := []struct {
		base string
		uri  string
		want string
	}{
		{"https://cdn.example.com/", Placeholder + "/images/products/1.png", "https://cdn.example.com/images/products/1.png"},
		{"https://cdn.example.com", "https://other/1.png", "https://other/1.png"},
		{"", Placeholder + "/1.png", Placeholder + "/1.png"},
	}

	for _, tt := range tests {
		if got := New(tt.base).ComposePicURI(tt.uri); got != tt.want {
			t.Fatalf("ComposePicURI(%q) with base %q = %q, want %q", tt.uri, tt.base, got, tt.want)
		}
	}
}
