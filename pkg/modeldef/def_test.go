package modeldef

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelDef(t *testing.T) {
	def, err := ParseModelDef([]byte(`
version: "1.0"
description: a frame
root:
  name: ground
  kind: Frame
  subfeatures:
    - name: tip
      kind: Station
      value: [0, 1, 0]
`))
	require.NoError(t, err)

	assert.Equal(t, "1.0", def.Version)
	assert.Equal(t, "a frame", def.Description)
	assert.Equal(t, "ground", def.Root.Name)
	require.Len(t, def.Root.Subfeatures, 1)
	assert.Equal(t, "Station", def.Root.Subfeatures[0].Kind)
	assert.Equal(t, []any{0, 1, 0}, def.Root.Subfeatures[0].Value)
}

func TestParseModelDefMissingRoot(t *testing.T) {
	_, err := ParseModelDef([]byte(`version: "1.0"`))
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = ParseModelDef([]byte("root:\n  name: x\n"))
	assert.ErrorIs(t, err, ErrMissingKind)

	_, err = ParseModelDef([]byte("root: [unclosed"))
	assert.Error(t, err)
}

func TestLoadModelDefMissingFile(t *testing.T) {
	_, err := LoadModelDef(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	def, err := LoadModelDef(filepath.Join("testdata", "arm.yaml"))
	require.NoError(t, err)

	data, err := def.Marshal()
	require.NoError(t, err)

	again, err := ParseModelDef(data)
	require.NoError(t, err)
	assert.Equal(t, def.Root.Name, again.Root.Name)
	assert.Len(t, again.Root.Subfeatures, len(def.Root.Subfeatures))
}
