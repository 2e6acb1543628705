package schema

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_Reload(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "base.yaml", "Mandatory: [Name]\n")

	h, err := NewHolder(dir, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	assert.Equal(t, []string{"base"}, h.Get().Names())

	var notified []string
	h.OnChange(func(reg *Registry) { notified = reg.Names() })

	writeSchema(t, dir, "caster.yaml", "Extends: base\nMandatory: [Mana]\n")
	require.NoError(t, h.Reload())

	assert.Equal(t, []string{"base", "caster"}, h.Get().Names())
	assert.Equal(t, []string{"base", "caster"}, notified)
}

func TestHolder_ReloadKeepsOldRegistryOnError(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "a.yaml", "")

	h, err := NewHolder(dir, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	before := h.Get()

	writeSchema(t, dir, "b.yaml", "Extends: c\n")
	writeSchema(t, dir, "c.yaml", "Extends: b\n")

	require.Error(t, h.Reload())
	assert.Same(t, before, h.Get())
}

func TestNewHolder_RejectsInvalidHierarchy(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "a.yaml", "Extends: missing\n")

	_, err := NewHolder(dir, zerolog.Nop())
	require.Error(t, err)
}

func TestHolder_WatchDir(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "base.yaml", "")

	h, err := NewHolder(dir, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	require.NoError(t, h.WatchDir())

	writeSchema(t, dir, "extra.yaml", "Extends: base\n")

	assert.Eventually(t, func() bool {
		_, ok := h.Get().Get("extra")
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, dir, filepath.Clean(h.Dir()))
}

func TestHolder_WatchDirFollowsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "base.yaml", "")
	writeSchema(t, dir, "classes/caster.yaml", "Extends: base\n")

	h, err := NewHolder(dir, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	require.NoError(t, h.WatchDir())

	writeSchema(t, dir, "classes/caster.yaml", "Extends: base\nMandatory: [Stats.MP]\n")

	assert.Eventually(t, func() bool {
		n, ok := h.Get().Get("caster")
		return ok && len(n.Mandatory) == 1
	}, 5*time.Second, 20*time.Millisecond, "edits in an existing subdirectory reload")

	require.NoError(t, os.Mkdir(filepath.Join(dir, "races"), 0o755))

	// The new directory is watched once its create event is handled; keep
	// rewriting until the schema inside is picked up.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "races", "elf.yaml"), []byte("Extends: base\n"), 0o644)

		_, ok := h.Get().Get("elf")
		return ok
	}, 5*time.Second, 50*time.Millisecond, "schemas in a new subdirectory reload")
}

func TestHolder_StopTwice(t *testing.T) {
	h, err := NewHolder(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	h.Stop()
	h.Stop()
}
