package download

import (
	"regexp"
	"testing"
	"time"
)

var filenamePattern = regexp.MustCompile(`^QR \d{4} \d{2}-\d{2}-\d{4}\.png$`)

func TestFilename_Fixed(t *testing.T) {
	p := NewPackagerWith(
		func() int { return 1234 },
		func() time.Time { return time.Date(2024, time.January, 1, 15, 4, 5, 0, time.UTC) },
	)

	if got := p.Filename(); got != "QR 1234 01-01-2024.png" {
		t.Errorf("expected %q, got %q", "QR 1234 01-01-2024.png", got)
	}
}

func TestFilename_DayBeforeMonth(t *testing.T) {
	p := NewPackagerWith(
		func() int { return 9999 },
		func() time.Time { return time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC) },
	)

	if got := p.Filename(); got != "QR 9999 28-03-2025.png" {
		t.Errorf("expected %q, got %q", "QR 9999 28-03-2025.png", got)
	}
}

func TestFilename_RandomFormat(t *testing.T) {
	p := NewPackager()

	for i := 0; i < 200; i++ {
		name := p.Filename()
		if !filenamePattern.MatchString(name) {
			t.Fatalf("filename %q does not match %s", name, filenamePattern)
		}
	}
}

func TestFilename_TagRange(t *testing.T) {
	p := NewPackager()

	for i := 0; i < 1000; i++ {
		tag := p.tag()
		if tag < minTag || tag > maxTag {
			t.Fatalf("tag %d outside [%d, %d]", tag, minTag, maxTag)
		}
	}
}

func TestPackage(t *testing.T) {
	a := Package([]byte{0x89, 'P', 'N', 'G'}, "QR 1234 01-01-2024.png")

	if a.MIMEType != "image/png" {
		t.Errorf("expected image/png, got %s", a.MIMEType)
	}
	if len(a.Bytes) != 4 {
		t.Errorf("expected 4 bytes, got %d", len(a.Bytes))
	}
	if got := a.ContentDisposition(); got != `attachment; filename="QR 1234 01-01-2024.png"` {
		t.Errorf("unexpected Content-Disposition %q", got)
	}
}
