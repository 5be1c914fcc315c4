package render

import (
	"context"
	"testing"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

func TestConvertWithoutTool(t *testing.T) {
	old := ConverterBinary
	ConverterBinary = "orgchart-no-such-converter"
	t.Cleanup(func() { ConverterBinary = old })

	if ConverterAvailable() {
		t.Fatal("ConverterAvailable() = true for missing binary")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !orgerrors.Is(err, orgerrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
	_, err = ToPNG(context.Background(), []byte("<svg/>"), 2)
	if !orgerrors.Is(err, orgerrors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !ConverterAvailable() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	png, err := ToPNG(context.Background(), svg, 1)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("ToPNG() output is not a PNG")
	}
}
