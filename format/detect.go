// Package format identifies the kind of menu document handed to cantine.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format is a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF is a menu as published.
	PDF
	// HTML is a positioned HTML dump of a PDF page, one div per text run.
	HTML
	// Image is a scan or photo of a menu, read through OCR.
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// MediaType returns the usual MIME type of the format.
func (f Format) MediaType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case HTML:
		return "text/html"
	case Image:
		return "image/*"
	default:
		return "application/octet-stream"
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		return Image
	default:
		return Unknown
	}
}

var imageMagic = [][]byte{
	[]byte("\x89PNG\r\n\x1a\n"),
	{0xff, 0xd8, 0xff},
	[]byte("GIF87a"),
	[]byte("GIF89a"),
	[]byte("II*\x00"),
	[]byte("MM\x00*"),
	[]byte("BM"),
}

// DetectFromMagic determines the format from the first bytes of a file.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return PDF
	}
	for _, magic := range imageMagic {
		if bytes.HasPrefix(data, magic) {
			return Image
		}
	}
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return Image
	}
	if looksLikeHTML(data) {
		return HTML
	}
	return Unknown
}

// looksLikeHTML accepts full documents as well as bare dumps that start
// straight with the positioned elements.
func looksLikeHTML(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n\ufeff")
	head := strings.ToLower(string(data[:min(len(data), 512)]))
	for _, prefix := range []string{"<!doctype html", "<html", "<div", "<body", "<meta"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return strings.HasPrefix(head, "<?xml") && strings.Contains(head, "<html")
}
