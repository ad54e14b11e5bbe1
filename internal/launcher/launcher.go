// Package launcher generates adaptive launcher icon sets with ImageMagick.
package launcher

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/fsutil"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/process"
)

// Density is a mipmap bucket and its icon edge length in pixels.
type Density struct {
	Name string
	Size int
}

// Densities are the generated mipmap buckets, largest first.
var Densities = []Density{
	{Name: "xxxhdpi", Size: 432},
	{Name: "xxhdpi", Size: 324},
	{Name: "xhdpi", Size: 216},
	{Name: "hdpi", Size: 162},
	{Name: "mdpi", Size: 108},
}

const (
	// PlayStoreSize is the edge length of the store listing icon.
	PlayStoreSize = 512

	// CanvasSize is the edge length of solid color layers.
	CanvasSize = 1024

	// PlayStoreIcon is written next to res/, relative to app/src/main.
	PlayStoreIcon = "ic_launcher-playstore.png"

	androidNS = "http://schemas.android.com/apk/res/android"
)

// Icon file names inside every mipmap directory.
const (
	ForegroundIcon = "ic_launcher_foreground.png"
	BackgroundIcon = "ic_launcher_background.png"
	MonochromeIcon = "ic_launcher_monochrome.png"
	LauncherIcon   = "ic_launcher.png"
)

var hexColorPattern = regexp.MustCompile(`^#([a-fA-F0-9]{6}|[a-fA-F0-9]{3})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// Geometry renders the edge length as a magick geometry such as 432x432.
func (d Density) Geometry() string {
	return geometry(d.Size)
}

func geometry(n int) string {
	s := strconv.Itoa(n)
	return s + "x" + s
}

// Layers names the two icon layers. Each is an image path or a hex color.
type Layers struct {
	Foreground string
	Background string
}

// Result describes a generated icon set.
type Result struct {
	// Files lists written files relative to app/src/main.
	Files []string

	// AdaptiveXML is true when mipmap-anydpi-v26/ic_launcher.xml was created.
	AdaptiveXML bool
}

// Generator produces launcher icons for a project.
type Generator struct {
	fs     afero.Fs
	runner process.Runner
	bin    string
}

// NewGenerator creates a Generator that runs the magick binary through runner.
func NewGenerator(fsys afero.Fs, runner process.Runner, magick string) *Generator {
	return &Generator{fs: fsys, runner: runner, bin: magick}
}

// Generate renders every density into a scratch directory and copies the
// result over <projectDir>/app/src/main.
func (g *Generator) Generate(ctx context.Context, projectDir string, layers Layers) (*Result, error) {
	mainDir := filepath.Join(projectDir, "app", "src", "main")
	resDir := filepath.Join(mainDir, "res")
	if !fsutil.IsDir(g.fs, resDir) {
		return nil, oerrors.NewNotFoundError("resource directory not found", resDir, "run this command from the root of an Android project or pass --project-dir")
	}

	if err := g.checkLayer("foreground", layers.Foreground); err != nil {
		return nil, err
	}
	if err := g.checkLayer("background", layers.Background); err != nil {
		return nil, err
	}

	scratch, err := afero.TempDir(g.fs, "", "compose-launcher-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer g.fs.RemoveAll(scratch) //nolint:errcheck

	work := filepath.Join(scratch, "work")
	stage := filepath.Join(scratch, "main")
	if err := g.fs.MkdirAll(work, 0o755); err != nil {
		return nil, err
	}

	fg, err := g.layerImage(ctx, layers.Foreground, filepath.Join(work, "foreground.png"))
	if err != nil {
		return nil, err
	}
	bg, err := g.layerImage(ctx, layers.Background, filepath.Join(work, "background.png"))
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, d := range Densities {
		rel := filepath.Join("res", "mipmap-"+d.Name)
		dir := filepath.Join(stage, rel)
		if err := g.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}

		fgOut := filepath.Join(dir, ForegroundIcon)
		bgOut := filepath.Join(dir, BackgroundIcon)
		steps := [][]string{
			{fg, "-resize", d.Geometry(), fgOut},
			{bg, "-resize", d.Geometry(), bgOut},
			{fg, "-resize", d.Geometry(), "-colorspace", "Gray", filepath.Join(dir, MonochromeIcon)},
			{bgOut, fgOut, "-gravity", "center", "-composite", filepath.Join(dir, LauncherIcon)},
		}
		if err := g.magickAll(ctx, steps); err != nil {
			return nil, err
		}
		for _, name := range []string{ForegroundIcon, BackgroundIcon, MonochromeIcon, LauncherIcon} {
			result.Files = append(result.Files, filepath.Join(rel, name))
		}
		output.Debug("rendered density", "density", d.Name, "size", d.Size)
	}

	playFg := filepath.Join(work, "playstore_foreground.png")
	playBg := filepath.Join(work, "playstore_background.png")
	if err := g.magickAll(ctx, [][]string{
		{fg, "-resize", geometry(PlayStoreSize), playFg},
		{bg, "-resize", geometry(PlayStoreSize), playBg},
		{playBg, playFg, "-gravity", "center", "-composite", filepath.Join(stage, PlayStoreIcon)},
	}); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, PlayStoreIcon)

	adaptiveRel := filepath.Join("res", "mipmap-anydpi-v26", "ic_launcher.xml")
	if !fsutil.Exists(g.fs, filepath.Join(mainDir, adaptiveRel)) {
		if err := g.writeAdaptiveIcon(filepath.Join(stage, adaptiveRel)); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, adaptiveRel)
		result.AdaptiveXML = true
	}

	if err := fsutil.CopyTree(g.fs, stage, mainDir); err != nil {
		return nil, fmt.Errorf("installing icons: %w", err)
	}
	return result, nil
}

func (g *Generator) checkLayer(name, value string) error {
	if value == "" {
		return oerrors.NewMalformedInputError(name+" is required", name, "")
	}
	if fsutil.Exists(g.fs, value) || IsHexColor(value) {
		return nil
	}
	return oerrors.NewMalformedInputError(
		fmt.Sprintf("%s %q is neither an existing image nor a hex color", name, value),
		name,
		"pass an image path or a color such as #3DDC84",
	)
}

// layerImage returns an image path for value, rendering a solid canvas
// into out when value is a color.
func (g *Generator) layerImage(ctx context.Context, value, out string) (string, error) {
	if fsutil.Exists(g.fs, value) {
		return value, nil
	}
	err := g.magick(ctx, "-size", geometry(CanvasSize), "xc:"+value, out)
	return out, err
}

func (g *Generator) magickAll(ctx context.Context, steps [][]string) error {
	for _, args := range steps {
		if err := g.magick(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) magick(ctx context.Context, args ...string) error {
	_, err := g.runner.Run(ctx, process.Command{Name: g.bin, Args: args})
	return err
}

func (g *Generator) writeAdaptiveIcon(path string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	icon := doc.CreateElement("adaptive-icon")
	icon.CreateAttr("xmlns:android", androidNS)
	for _, layer := range []string{"background", "foreground", "monochrome"} {
		el := icon.CreateElement(layer)
		el.CreateAttr("android:drawable", "@mipmap/ic_launcher_"+layer)
	}
	doc.Indent(4)

	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("rendering adaptive icon: %w", err)
	}
	if err := g.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(g.fs, path, data, 0o644)
}
