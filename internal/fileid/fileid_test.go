package fileid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	f := New(filepath.Join("proj", ".", "build.gradle.kts"))

	assert.Equal(t, "build.gradle.kts", f.ShortName())
	assert.Equal(t, filepath.Join("proj", "build.gradle.kts"), f.Path())
	assert.Equal(t, f.Path(), Key(f))
}

func TestOriginal(t *testing.T) {
	physical := New("proj/main.kts")
	assert.Equal(t, physical, Original(physical))

	copyOf := WithOrigin("/tmp/preview/main.kts", physical)
	assert.Equal(t, "main.kts", copyOf.ShortName())
	assert.Equal(t, physical, Original(copyOf))

	orphan := WithOrigin("/tmp/orphan.kts", nil)
	assert.Equal(t, Identity(orphan), Original(orphan))
}
