package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tweakgen/tweakgen/pkg/errors"
	"github.com/tweakgen/tweakgen/pkg/tweak"
)

func testCatalog() *tweak.Catalog {
	fishing := tweak.NewClamp(1, 1)
	return tweak.NewCatalog(map[string]tweak.Action{
		"shop_cost_scale":           tweak.NewScaleInt(0.5, false),
		"damage_scale":              tweak.NewScaleInt(1.3, false),
		"base_health":               tweak.Disabled(tweak.NewFixed(100)),
		"money_qty":                 tweak.NewFixed(400),
		tweak.MacroFishingChance:    fishing,
		tweak.MacroFishingRoomSpace: fishing,
	})
}

func TestRewriteLine(t *testing.T) {
	p := New(testCatalog(), &bytes.Buffer{})

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "scale int substitution",
			line: "Cost=@shop_cost_scale|40@;",
			want: "Cost=20;",
		},
		{
			name: "clamp improves chance",
			line: "Chance=@fishing_chance|0.1@",
			want: "Chance=1",
		},
		{
			name: "disabled action keeps default",
			line: "Health = @base_health|50@,",
			want: "Health = 50,",
		},
		{
			name: "no macro passes through",
			line: "PlainLine = { foo = 12 },",
			want: "PlainLine = { foo = 12 },",
		},
		{
			name: "uppercase is not a macro name",
			line: "X=@NotAMacro|5@",
			want: "X=@NotAMacro|5@",
		},
		{
			name: "empty line",
			line: "",
			want: "",
		},
		{
			name: "empty prefix and suffix",
			line: "@money_qty|30@",
			want: "400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.rewriteLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteLine_MissingMappingWarns(t *testing.T) {
	p := New(testCatalog(), &bytes.Buffer{})

	got, err := p.rewriteLine("Qty=@unknown_macro|7@")
	require.NoError(t, err, "missing mapping is recoverable")
	assert.Equal(t, "Qty=7", got, "default must be kept verbatim")
	assert.Equal(t, 1, p.Warnings())
}

func TestProcessFile_MirrorsIntoNestedDir(t *testing.T) {
	templateDir := t.TempDir()
	liveDir := t.TempDir()

	rel := filepath.Join("Scripts", "Data", "shop.sjson")
	src := filepath.Join(templateDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte("Cost=@shop_cost_scale|40@;\nKeep = true\n"), 0644))

	var progress bytes.Buffer
	p := New(testCatalog(), &progress)
	require.NoError(t, p.ProcessFile(templateDir, liveDir, rel))

	got, err := os.ReadFile(filepath.Join(liveDir, rel))
	require.NoError(t, err)
	assert.Equal(t, "Cost=20;\nKeep = true", string(got))
	assert.Contains(t, progress.String(), "Processing: "+rel)
}

func TestProcessFile_PreservesBOMAndCRLF(t *testing.T) {
	templateDir := t.TempDir()
	liveDir := t.TempDir()

	bom := []byte{0xEF, 0xBB, 0xBF}
	content := append(append([]byte{}, bom...),
		[]byte("Damage=@damage_scale|100@\r\nUntouched\r\n")...)
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "data.txt"), content, 0644))

	p := New(testCatalog(), &bytes.Buffer{})
	require.NoError(t, p.ProcessFile(templateDir, liveDir, "data.txt"))

	got, err := os.ReadFile(filepath.Join(liveDir, "data.txt"))
	require.NoError(t, err)

	want := append(append([]byte{}, bom...), []byte("Damage=130\r\nUntouched")...)
	assert.Equal(t, want, got, "BOM and CRLF must survive, with no trailing newline")
}

func TestProcessFile_UnsupportedEncodingCreatesNoOutput(t *testing.T) {
	templateDir := t.TempDir()
	liveDir := t.TempDir()

	// UTF-16LE with BOM
	content := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00, '\n', 0x00}
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "bad.txt"), content, 0644))

	p := New(testCatalog(), &bytes.Buffer{})
	err := p.ProcessFile(templateDir, liveDir, "bad.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEncodingUnsupported))

	_, statErr := os.Stat(filepath.Join(liveDir, "bad.txt"))
	assert.True(t, os.IsNotExist(statErr), "no live file may be created for a refused template")
}

func TestRun_WalksWholeTree(t *testing.T) {
	templateDir := t.TempDir()
	liveDir := t.TempDir()

	files := map[string]string{
		"a.txt":                       "Money = @money_qty|30@\n",
		filepath.Join("sub", "b.txt"): "Rooms=@fishing_room_space|10@\n",
	}
	for rel, content := range files {
		path := filepath.Join(templateDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	p := New(testCatalog(), &bytes.Buffer{})
	require.NoError(t, p.Run(templateDir, liveDir))

	a, err := os.ReadFile(filepath.Join(liveDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Money = 400", string(a))

	b, err := os.ReadFile(filepath.Join(liveDir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Rooms=1", string(b))
}

func TestRun_AbortsOnFirstFatalError(t *testing.T) {
	templateDir := t.TempDir()
	liveDir := t.TempDir()

	// A file with no line terminator at all is fatal.
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "bad.txt"),
		[]byte("no terminator here"), 0644))

	p := New(testCatalog(), &bytes.Buffer{})
	err := p.Run(templateDir, liveDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNewlineUnknown))
}
