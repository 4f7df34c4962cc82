// Package download names generated QR images and packages them as
// downloadable artifacts.
package download

import (
	"fmt"
	"math/rand"
	"time"
)

// MIMEType is the content type of every artifact.
const MIMEType = "image/png"

// Tag bounds for the random part of the filename.
const (
	minTag = 1111
	maxTag = 9999
)

// Artifact is an encoded image ready to be served as a file download.
type Artifact struct {
	Bytes    []byte
	Filename string
	MIMEType string
}

// Packager generates download filenames of the form
// "QR <NNNN> <DD-MM-YYYY>.png".
type Packager struct {
	tag func() int
	now func() time.Time
}

// NewPackager returns a Packager that draws the tag from math/rand and the
// date from the wall clock.
func NewPackager() *Packager {
	return &Packager{
		tag: func() int { return minTag + rand.Intn(maxTag-minTag+1) },
		now: time.Now,
	}
}

// NewPackagerWith returns a Packager with fixed sources.
func NewPackagerWith(tag func() int, now func() time.Time) *Packager {
	return &Packager{tag: tag, now: now}
}

// Filename returns a fresh filename. Callers that want one name per page
// view call it once and keep the result.
func (p *Packager) Filename() string {
	return fmt.Sprintf("QR %04d %s.png", p.tag(), p.now().Format("02-01-2006"))
}

// Package binds data to filename as a PNG artifact.
func Package(data []byte, filename string) Artifact {
	return Artifact{
		Bytes:    data,
		Filename: filename,
		MIMEType: MIMEType,
	}
}

// ContentDisposition returns the Content-Disposition header value that makes
// browsers save the artifact under its filename.
func (a Artifact) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", a.Filename)
}
