package storefront

import "strings"

var imagePrefixes = []string{"http://", "https://", "/", "data:"}

// ValidImages keeps the trimmed entries that look like loadable image sources.
func ValidImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); isImageSource(img) {
			out = append(out, img)
		}
	}
	return out
}

// FirstImage returns the first valid image source.
func FirstImage(images []string) (string, bool) {
	for _, img := range images {
		if img = strings.TrimSpace(img); isImageSource(img) {
			return img, true
		}
	}
	return "", false
}

func isImageSource(s string) bool {
	for _, p := range imagePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
