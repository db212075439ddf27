package dataset

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Item is one dataset entry: an image plus, when a paired text file exists,
// the text path. The numeric ID extracted from the image filename identifies
// the item across checkpoints and results.
type Item struct {
	ID        int
	ImagePath string
	TextPath  string
}

// HasText reports whether the item carries a paired text file.
func (i Item) HasText() bool { return i.TextPath != "" }

// Key is the checkpoint/result key for the item.
func (i Item) Key() string { return strconv.Itoa(i.ID) }

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Scan loads dataset items from dir: images matched by extension, paired to
// text files by filename convention, de-duplicated by numeric ID, sorted
// ascending and capped at limit. Files whose names carry no digits are
// skipped with a warning.
func Scan(log *slog.Logger, dir string, limit int) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory %s: %w", dir, err)
	}

	byID := map[int]Item{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		id, err := ParseID(name)
		if err != nil {
			log.Warn("skipping image with unparseable ID", "file", name, "err", err)
			continue
		}
		if _, exists := byID[id]; exists {
			// first encountered wins on duplicate IDs
			continue
		}
		imgPath := filepath.Join(dir, name)
		byID[id] = Item{
			ID:        id,
			ImagePath: imgPath,
			TextPath:  findTextFile(imgPath, id),
		}
	}

	items := make([]Item, 0, len(byID))
	for _, item := range byID {
		items = append(items, item)
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })

	if limit > 0 && len(items) > limit {
		log.Warn("dataset exceeds limit, truncating", "found", len(items), "limit", limit)
		items = items[:limit]
	}
	return items, nil
}

// ImageOnly returns the items without a paired text file.
func ImageOnly(items []Item) []Item {
	var out []Item
	for _, item := range items {
		if !item.HasText() {
			out = append(out, item)
		}
	}
	return out
}

// WithText returns the items carrying a paired text file.
func WithText(items []Item) []Item {
	var out []Item
	for _, item := range items {
		if item.HasText() {
			out = append(out, item)
		}
	}
	return out
}

// ParseID extracts the numeric ID from a filename, e.g. "image123.jpg" -> 123.
func ParseID(name string) (int, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var digits strings.Builder
	for _, r := range base {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("no digits in filename %q", name)
	}
	id, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, fmt.Errorf("invalid ID in filename %q: %w", name, err)
	}
	return id, nil
}

// findTextFile looks for the paired text file next to the image, trying the
// exact basename first and then the ID-based naming conventions.
func findTextFile(imagePath string, id int) string {
	dir := filepath.Dir(imagePath)
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))

	candidates := []string{
		base + ".txt",
		base + ".text",
		fmt.Sprintf("text%d.txt", id),
		fmt.Sprintf("text%d.text", id),
		fmt.Sprintf("%d.txt", id),
		fmt.Sprintf("%d.text", id),
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// EncodeImage reads the image file and returns its base64 encoding and MIME
// type, derived from the file extension.
func EncodeImage(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	mime, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mime = "image/jpeg"
	}
	return base64.StdEncoding.EncodeToString(data), mime, nil
}

// ReadText reads the paired text file as UTF-8, falling back to Latin-1 for
// legacy files.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode text file %s: %w", path, err)
		}
		data = decoded
	}
	return strings.TrimSpace(string(data)), nil
}
