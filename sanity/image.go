package sanity

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const imageCDN = "https://cdn.sanity.io/images"

// Image is an image field as stored in documents.
type Image struct {
	Asset    Reference  `json:"asset"`
	Alt      string     `json:"alt,omitempty"`
	Crop     *ImageCrop `json:"crop,omitempty"`
	Hotspot  *Hotspot   `json:"hotspot,omitempty"`
	Caption  string     `json:"caption,omitempty"`
	AssetURL string     `json:"url,omitempty"`
}

// Reference points to another document, here an image asset.
type Reference struct {
	Ref string `json:"_ref"`
}

// ImageCrop holds the fraction cut from each edge.
type ImageCrop struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Hotspot is the focal point of an image, in fractions.
type Hotspot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// assetRef is a parsed "image-<id>-<w>x<h>-<format>" reference.
type assetRef struct {
	id     string
	width  int
	height int
	format string
}

func parseAssetRef(ref string) (assetRef, error) {
	rest, ok := strings.CutPrefix(ref, "image-")
	if !ok {
		return assetRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}

	parts := strings.Split(rest, "-")
	if len(parts) < 3 {
		return assetRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	format := parts[len(parts)-1]
	dims := parts[len(parts)-2]
	id := strings.Join(parts[:len(parts)-2], "-")

	w, h, ok := strings.Cut(dims, "x")
	if !ok || id == "" || format == "" {
		return assetRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return assetRef{}, fmt.Errorf("%w: %q: bad width", ErrInvalidImageRef, ref)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return assetRef{}, fmt.Errorf("%w: %q: bad height", ErrInvalidImageRef, ref)
	}

	return assetRef{id: id, width: width, height: height, format: format}, nil
}

// ImageBuilder assembles a CDN URL for an image asset.
type ImageBuilder struct {
	projectID string
	dataset   string
	ref       string
	crop      *ImageCrop
	params    url.Values
	err       error
}

// Image starts a URL builder for src, which may be an asset reference string,
// an Image, a *Image or a Reference.
func (c *Client) Image(src any) *ImageBuilder {
	return NewImageBuilder(c.cfg.ProjectID, c.cfg.Dataset, src)
}

// NewImageBuilder starts a URL builder without a Client.
func NewImageBuilder(projectID, dataset string, src any) *ImageBuilder {
	b := &ImageBuilder{projectID: projectID, dataset: dataset, params: url.Values{}}

	switch v := src.(type) {
	case string:
		b.ref = v
	case Reference:
		b.ref = v.Ref
	case Image:
		b.ref = v.Asset.Ref
		b.crop = v.Crop
	case *Image:
		if v != nil {
			b.ref = v.Asset.Ref
			b.crop = v.Crop
		}
	default:
		b.err = fmt.Errorf("%w: unsupported source %T", ErrInvalidImageRef, src)
	}
	return b
}

// Width sets the output width in pixels.
func (b *ImageBuilder) Width(px int) *ImageBuilder {
	return b.setInt("w", px)
}

// Height sets the output height in pixels.
func (b *ImageBuilder) Height(px int) *ImageBuilder {
	return b.setInt("h", px)
}

// Quality sets the compression quality, 0-100.
func (b *ImageBuilder) Quality(q int) *ImageBuilder {
	if q < 0 || q > 100 {
		b.err = fmt.Errorf("quality %d out of range 0-100", q)
		return b
	}
	return b.setInt("q", q)
}

// Fit sets how the image fits the requested box: clip, crop, fill, fillmax, max, scale, min.
func (b *ImageBuilder) Fit(mode string) *ImageBuilder {
	switch mode {
	case "clip", "crop", "fill", "fillmax", "max", "scale", "min":
		b.params.Set("fit", mode)
	default:
		b.err = fmt.Errorf("unknown fit mode %q", mode)
	}
	return b
}

// Format forces an output format: jpg, pjpg, png, webp.
func (b *ImageBuilder) Format(format string) *ImageBuilder {
	b.params.Set("fm", format)
	return b
}

// Auto lets the CDN pick the format, e.g. Auto("format").
func (b *ImageBuilder) Auto(mode string) *ImageBuilder {
	b.params.Set("auto", mode)
	return b
}

func (b *ImageBuilder) setInt(key string, v int) *ImageBuilder {
	if v <= 0 && key != "q" {
		b.err = fmt.Errorf("%s must be positive, got %d", key, v)
		return b
	}
	b.params.Set(key, strconv.Itoa(v))
	return b
}

// URL returns the CDN URL or the first error recorded while building.
func (b *ImageBuilder) URL() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.projectID == "" || b.dataset == "" {
		return "", fmt.Errorf("%w: project ID and dataset are required", ErrInvalidConfig)
	}

	ref, err := parseAssetRef(b.ref)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	for k, v := range b.params {
		params[k] = v
	}
	if rect, ok := cropRect(ref, b.crop); ok {
		params.Set("rect", rect)
	}

	u := fmt.Sprintf("%s/%s/%s/%s-%dx%d.%s", imageCDN, b.projectID, b.dataset, ref.id, ref.width, ref.height, ref.format)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u, nil
}

// cropRect converts a fractional crop to the CDN's "left,top,width,height".
func cropRect(ref assetRef, crop *ImageCrop) (string, bool) {
	if crop == nil || (crop.Top == 0 && crop.Bottom == 0 && crop.Left == 0 && crop.Right == 0) {
		return "", false
	}
	w, h := float64(ref.width), float64(ref.height)
	left := math.Round(crop.Left * w)
	top := math.Round(crop.Top * h)
	width := math.Round(w - crop.Right*w - left)
	height := math.Round(h - crop.Bottom*h - top)
	return fmt.Sprintf("%d,%d,%d,%d", int(left), int(top), int(width), int(height)), true
}
