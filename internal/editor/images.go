package editor

import "strings"

// ImageRow is one editable image URL.
type ImageRow struct {
	Key    int
	URL    string
	Broken bool
}

// ImageRows is an ordered list of image URL rows. Broken-image flags are
// keyed by the row's stable key, so removing a row leaves the flags of the
// other rows untouched.
type ImageRows struct {
	keys   []int
	urls   map[int]string
	broken map[int]bool
	next   int
}

// NewImageRows creates one row per url.
func NewImageRows(urls []string) *ImageRows {
	r := &ImageRows{urls: make(map[int]string), broken: make(map[int]bool)}
	for _, u := range urls {
		r.Add(u)
	}
	return r
}

// Add appends a row and returns its key.
func (r *ImageRows) Add(url string) int {
	key := r.next
	r.next++
	r.keys = append(r.keys, key)
	r.urls[key] = url
	return key
}

// Set edits the URL of a row. A new URL clears the row's broken flag.
func (r *ImageRows) Set(key int, url string) bool {
	if _, ok := r.urls[key]; !ok {
		return false
	}
	if r.urls[key] != url {
		delete(r.broken, key)
	}
	r.urls[key] = url
	return true
}

// Remove deletes a row.
func (r *ImageRows) Remove(key int) bool {
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			delete(r.urls, key)
			delete(r.broken, key)
			return true
		}
	}
	return false
}

// MarkBroken records a failed image load for a row.
func (r *ImageRows) MarkBroken(key int) {
	if _, ok := r.urls[key]; ok {
		r.broken[key] = true
	}
}

// MarkLoaded clears a row's broken flag.
func (r *ImageRows) MarkLoaded(key int) {
	delete(r.broken, key)
}

// Rows returns the rows in display order.
func (r *ImageRows) Rows() []ImageRow {
	rows := make([]ImageRow, 0, len(r.keys))
	for _, k := range r.keys {
		rows = append(rows, ImageRow{Key: k, URL: r.urls[k], Broken: r.broken[k]})
	}
	return rows
}

// Len is the number of rows.
func (r *ImageRows) Len() int { return len(r.keys) }

// Values returns the trimmed non-empty URLs in order.
func (r *ImageRows) Values() []string {
	out := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		if u := strings.TrimSpace(r.urls[k]); u != "" {
			out = append(out, u)
		}
	}
	return out
}
