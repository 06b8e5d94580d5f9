package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

func TestDecodePPM(t *testing.T) {
	data := "P3\n2 1\n255\n10 20 30 40 50 60\n"

	img, err := DecodePPM(strings.NewReader(data))
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if img.Width() != 2 || img.Height() != 1 {
		t.Fatalf("size: got %dx%d, want 2x1", img.Width(), img.Height())
	}
	if got := img.At(0, 0); got != (imaging.Pixel{R: 10, G: 20, B: 30}) {
		t.Errorf("pixel (0,0): got %v", got)
	}
	if got := img.At(0, 1); got != (imaging.Pixel{R: 40, G: 50, B: 60}) {
		t.Errorf("pixel (0,1): got %v", got)
	}
}

func TestDecodePPM_CommentsAndLayout(t *testing.T) {
	data := strings.Join([]string{
		"# written by hand",
		"P3",
		"# size follows",
		"2",
		"2 15",
		"",
		"1 2 3   4 5 6",
		"7 8 9 10 11 12 # trailing fields after a value are kept",
	}, "\n")

	// The trailing comment is not a full-line comment, so its words remain
	// and are ignored as extra fields.
	img, err := DecodePPM(strings.NewReader(data))
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if img.MaxValue() != 15 {
		t.Errorf("MaxValue: got %d, want 15", img.MaxValue())
	}
	want := [][]imaging.Pixel{
		{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}},
		{{R: 7, G: 8, B: 9}, {R: 10, G: 11, B: 12}},
	}
	if diff := cmp.Diff(want, img.Grid()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePPM_TrustsValues(t *testing.T) {
	img, err := DecodePPM(strings.NewReader("P3 1 1 255 300 -1 7"))
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if got := img.At(0, 0); got != (imaging.Pixel{R: 300, G: -1, B: 7}) {
		t.Errorf("got %v, want values stored unclamped", got)
	}
}

func TestDecodePPM_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"only comments", "# nothing\n# here\n"},
		{"bad magic", "P6\n1 1\n255\n0 0 0\n"},
		{"missing height", "P3\n1\n"},
		{"non-numeric width", "P3\nx 1\n255\n0 0 0\n"},
		{"zero width", "P3\n0 1\n255\n"},
		{"zero max", "P3\n1 1\n0\n0 0 0\n"},
		{"truncated pixels", "P3\n2 1\n255\n1 2 3 4 5\n"},
		{"non-numeric channel", "P3\n1 1\n255\n1 two 3\n"},
		{"size overflows to zero", "P3\n4294967296 4294967296\n255\n0 0 0\n"},
		{"huge width", "P3\n4611686018427387904 1\n255\n0 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePPM(strings.NewReader(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("got %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestEncodePPM_Layout(t *testing.T) {
	img, err := imaging.New([][]imaging.Pixel{
		{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}},
		{{R: 7, G: 8, B: 9}, {R: 10, G: 11, B: 12}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}
	want := "P3\n2 2\n255\n1 2 3 4 5 6 \n7 8 9 10 11 12 \n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodePPM_AlwaysDeclares255(t *testing.T) {
	img, err := imaging.NewWithMax([][]imaging.Pixel{{imaging.Grey(15)}}, 15)
	if err != nil {
		t.Fatalf("NewWithMax failed: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}
	if got := buf.String(); got != "P3\n1 1\n255\n15 15 15 \n" {
		t.Errorf("got %q", got)
	}
}

func TestPPM_RoundTrip(t *testing.T) {
	img, err := imaging.New([][]imaging.Pixel{
		{{R: 0, G: 128, B: 255}, {R: 17, G: 34, B: 51}, imaging.Grey(9)},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}
	back, err := DecodePPM(&buf)
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if !back.Equal(img) {
		t.Error("image did not survive a PPM round trip")
	}
}

func TestIsPPM(t *testing.T) {
	tests := []struct {
		data string
		want bool
	}{
		{"P3\n1 1\n255\n", true},
		{"# comment\n\nP3 1 1 255", true},
		{"P6\n", false},
		{"\x89PNG\r\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isPPM([]byte(tt.data)); got != tt.want {
			t.Errorf("isPPM(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
