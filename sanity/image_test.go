package sanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRef = "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg"

func TestParseAssetRef(t *testing.T) {
	ref, err := parseAssetRef(testRef)
	require.NoError(t, err)
	assert.Equal(t, assetRef{id: "Tb9Ew8CXIwaY6R1kjMvI0uRR", width: 2000, height: 3000, format: "jpg"}, ref)

	for _, bad := range []string{"", "file-abc-pdf", "image-abc-jpg", "image-abc-20x-jpg", "image-abc-axb-png"} {
		_, err := parseAssetRef(bad)
		assert.ErrorIs(t, err, ErrInvalidImageRef, bad)
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *ImageBuilder) *ImageBuilder
		src   any
		want  string
	}{
		{
			name:  "plain ref",
			src:   testRef,
			build: func(b *ImageBuilder) *ImageBuilder { return b },
			want:  "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg",
		},
		{
			name: "sized",
			src:  Image{Asset: Reference{Ref: testRef}},
			build: func(b *ImageBuilder) *ImageBuilder {
				return b.Width(800).Height(600).Fit("crop").Auto("format").Quality(75)
			},
			want: "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?auto=format&fit=crop&h=600&q=75&w=800",
		},
		{
			name: "cropped",
			src: &Image{
				Asset: Reference{Ref: testRef},
				Crop:  &ImageCrop{Top: 0.1, Bottom: 0.2, Left: 0.05, Right: 0.15},
			},
			build: func(b *ImageBuilder) *ImageBuilder { return b.Width(400) },
			want:  "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?rect=100%2C300%2C1600%2C2100&w=400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build(NewImageBuilder("abc123", "production", tt.src)).URL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageURLErrors(t *testing.T) {
	_, err := NewImageBuilder("abc123", "production", 42).URL()
	assert.ErrorIs(t, err, ErrInvalidImageRef)

	_, err = NewImageBuilder("abc123", "production", testRef).Width(0).URL()
	assert.Error(t, err)

	_, err = NewImageBuilder("abc123", "production", testRef).Fit("stretch").URL()
	assert.Error(t, err)

	_, err = NewImageBuilder("abc123", "production", testRef).Quality(101).URL()
	assert.Error(t, err)

	_, err = NewImageBuilder("", "production", testRef).URL()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
