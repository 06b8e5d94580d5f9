package imaging

import "testing"

func TestInfo(t *testing.T) {
	tests := []struct {
		name string
		grid [][]Pixel
		want ImageInfo
	}{
		{
			name: "grey",
			grid: [][]Pixel{{Grey(10), Grey(20)}, {Grey(30), Grey(41)}},
			want: ImageInfo{Width: 2, Height: 2, MaxValue: 255, Greyscale: true, MeanIntensity: 25},
		},
		{
			name: "color",
			grid: [][]Pixel{{{R: 255}, {G: 255}, {B: 255}}},
			want: ImageInfo{Width: 3, Height: 1, MaxValue: 255, Greyscale: false, MeanIntensity: 85},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Info(mustImage(t, tt.grid))
			if *got != tt.want {
				t.Errorf("Info() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
