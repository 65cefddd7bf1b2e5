package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourey/lineart"
)

func TestDefaultConfig_MatchesDefaultParams(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	p := lineart.DefaultParams()

	assert.Equal(p.StrokeThreshold, cfg.Threshold)
	assert.Equal(p.SplineMaxLength, cfg.SplineLen)
	assert.Equal(p.SegmentMaxLength, cfg.SegmentLen)
	assert.Equal(p.MaxGrow, cfg.MaxGrow)
	assert.Equal(p.SelectTransparent, cfg.SelectTransparent)
	assert.Equal(p.BindGapLength, cfg.BindGapLength)
	assert.NoError(cfg.Params().Validate())
}

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig("")
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "lineart.toml")
	body := "threshold = 0.75\nspline_len = 50\nmax_grow = 7\n"
	assert.NoError(os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfig(path)
	assert.NoError(err)
	assert.Equal(0.75, cfg.Threshold)
	assert.Equal(50, cfg.SplineLen)
	assert.Equal(7, cfg.MaxGrow)

	// Fields absent from the file keep DefaultConfig's values.
	assert.Equal(DefaultConfig().SegmentLen, cfg.SegmentLen)
	assert.Equal(DefaultConfig().Workers, cfg.Workers)
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(err)
}

func TestLoadConfig_MalformedFileErrors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	assert.NoError(os.WriteFile(path, []byte("not = [valid toml"), 0644))

	_, err := LoadConfig(path)
	assert.Error(err)
}
