package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		path   string
		stem   string
		suffix string
	}{
		{"img_001.png", "img_001", ".png"},
		{"/data/ref/IMG_001.PNG", "IMG_001", ".PNG"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".hidden", ".hidden", ""},
		{".hidden.png", ".hidden", ".png"},
		{"noext", "noext", ""},
		{"trailing.", "trailing.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stem, suffix := SplitName(tt.path)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestTrimSuffixSegments(t *testing.T) {
	tests := []struct {
		name      string
		stem      string
		delimiter string
		count     int
		want      string
	}{
		{"zero count", "img_001_sr", "_", 0, "img_001_sr"},
		{"negative count", "img_001_sr", "_", -2, "img_001_sr"},
		{"empty delimiter", "img_001_sr", "", 1, "img_001_sr"},
		{"drop one", "img_001_sr", "_", 1, "img_001"},
		{"drop two", "img_001_sr", "_", 2, "img"},
		{"segments equal count", "img_001", "_", 2, "img_001"},
		{"segments below count", "img", "_", 3, "img"},
		{"empty join falls back", "_sr", "_", 1, "_sr"},
		{"multi-char delimiter", "frame--x4--sr", "--", 1, "frame--x4"},
		{"delimiter absent", "frame", "-", 1, "frame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimSuffixSegments(tt.stem, tt.delimiter, tt.count))
		})
	}
}

func TestTrimSuffixSegments_ShortStemsUnchanged(t *testing.T) {
	stems := []string{"a", "a_b", "a_b_c", "", "_", "__"}
	for _, stem := range stems {
		for count := 0; count <= 4; count++ {
			segments := len(strings.Split(stem, "_"))
			if segments <= count {
				assert.Equal(t, stem, TrimSuffixSegments(stem, "_", count), "stem %q count %d", stem, count)
			}
		}
	}
}

func TestNewKeyBuilder(t *testing.T) {
	t.Run("suffix is lowercased but stem keeps case", func(t *testing.T) {
		build := NewKeyBuilder(0, "_", false)
		assert.Equal(t, "IMG_001.png", build("/ref/IMG_001.PNG"))
	})

	t.Run("ignore case lowercases the whole key", func(t *testing.T) {
		build := NewKeyBuilder(0, "_", true)
		assert.Equal(t, "img_001.png", build("/ref/IMG_001.PNG"))
	})

	t.Run("different drop counts pair differing stems", func(t *testing.T) {
		ref := NewKeyBuilder(1, "_", false)
		tgt := NewKeyBuilder(2, "_", false)
		assert.Equal(t, "img.png", ref("img_001.png"))
		assert.Equal(t, "img.png", tgt("img_002_sr.png"))
		assert.Equal(t, ref("img_001.png"), tgt("img_002_sr.png"))
	})

	t.Run("extension stays part of the key", func(t *testing.T) {
		build := NewKeyBuilder(1, "_", false)
		assert.NotEqual(t, build("a_x.png"), build("a_x.jpg"))
	})
}

func TestCommonKeys(t *testing.T) {
	ref := map[string]string{
		"c.png": "/ref/c.png",
		"a.png": "/ref/a.png",
		"b.png": "/ref/b.png",
		"z.png": "/ref/z.png",
	}
	tgt := map[string]string{
		"b.png": "/tgt/b.png",
		"a.png": "/tgt/a.png",
		"c.png": "/tgt/c.png",
		"y.png": "/tgt/y.png",
	}

	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, CommonKeys(ref, tgt))
}

func TestCommonKeys_Disjoint(t *testing.T) {
	keys := CommonKeys(map[string]string{"a.png": "a"}, map[string]string{"b.png": "b"})
	assert.Empty(t, keys)
}
