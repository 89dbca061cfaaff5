package format

import "testing"

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{HTML, "HTML"},
		{Image, "Image"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_MediaType(t *testing.T) {
	if got := PDF.MediaType(); got != "application/pdf" {
		t.Errorf("PDF.MediaType() = %q", got)
	}
	if got := Unknown.MediaType(); got != "application/octet-stream" {
		t.Errorf("Unknown.MediaType() = %q", got)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"menu.pdf", PDF},
		{"MENU.PDF", PDF},
		{"menu.html", HTML},
		{"menu.htm", HTML},
		{"scan.JPG", Image},
		{"scan.tiff", Image},
		{"scan.webp", Image},
		{"menu.docx", Unknown},
		{"menu", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n%\xe2\xe3"), PDF},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00"), Image},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10}, Image},
		{"tiff", []byte("II*\x00\x08\x00"), Image},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), Image},
		{"doctype", []byte("  <!DOCTYPE html><html>"), HTML},
		{"bare dump", []byte("\n<div style='top: 10px; left: 4px'>x</div>"), HTML},
		{"xhtml", []byte(`<?xml version="1.0"?><html xmlns="x">`), HTML},
		{"xml", []byte(`<?xml version="1.0"?><svg/>`), Unknown},
		{"zip", []byte("PK\x03\x04"), Unknown},
		{"short", []byte("%P"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}
