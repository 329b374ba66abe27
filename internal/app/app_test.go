package app_test

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/visiongo/internal/app"
	"github.com/vk/visiongo/internal/capability"
	"github.com/vk/visiongo/internal/nativecore"
	"github.com/vk/visiongo/internal/testutil"
	"github.com/vk/visiongo/modules/impex"
)

type fakeModule struct {
	name   string
	handle capability.Handle
}

func (m fakeModule) Name() string { return m.name }

func (m fakeModule) Load(ctx context.Context) (capability.Handle, error) {
	return m.handle, nil
}

func testConfig(manifestsPath string) *app.Config {
	return &app.Config{
		ManifestsPath: manifestsPath,
		LogFormat:     "text",
		LogLevel:      "error",
	}
}

// disableCore forces the probe into the unavailable path for this test.
func disableCore(t *testing.T) {
	t.Helper()
	t.Setenv(nativecore.EnvDisableCore, "1")
}

// enableFakeCore plants a fake core library and points the probe at it.
func enableFakeCore(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("fixture uses linux library naming")
	}
	dir := t.TempDir()
	testutil.WriteFakeLibrary(t, dir, "libvigracore.so")
	t.Setenv(nativecore.EnvDisableCore, "0")
	t.Setenv(nativecore.EnvLibraryPath, dir)
	t.Setenv(nativecore.EnvCoreVersion, "")
}

func TestNewApp_CoreUnavailable_DefersEveryCapability(t *testing.T) {
	disableCore(t)
	buf := &testutil.SafeBuffer{}
	manifests := testutil.WriteManifests(t, map[string]string{
		"filters.hcl": `
			capability "filters" {
				operation "convolve" {}
			}
		`,
	})
	mod := fakeModule{
		name:   "filters",
		handle: capability.NewHandle("filters", "", map[string]any{"convolve": 1}),
	}

	a := app.NewApp(buf, testConfig(manifests), mod)
	require.False(t, a.CoreAvailable())

	entry, ok := a.Registry().Lookup("filters")
	require.True(t, ok)
	require.Equal(t, capability.StateDeferred, entry.State())
}

func TestNewApp_CoreAvailable_BindsCapabilities(t *testing.T) {
	enableFakeCore(t)
	buf := &testutil.SafeBuffer{}
	manifests := testutil.WriteManifests(t, map[string]string{
		"filters.hcl": `
			capability "filters" {
				operation "convolve" {}
			}
		`,
	})
	mod := fakeModule{
		name:   "filters",
		handle: capability.NewHandle("filters", "Spatial filtering.", map[string]any{"convolve": 1}),
	}

	a := app.NewApp(buf, testConfig(manifests), mod)
	require.True(t, a.CoreAvailable())

	entry, ok := a.Registry().Lookup("filters")
	require.True(t, ok)
	require.Equal(t, capability.StateBound, entry.State())
}

func TestNewApp_PanicsOnManifestParityViolation(t *testing.T) {
	enableFakeCore(t)
	manifests := testutil.WriteManifests(t, map[string]string{
		"filters.hcl": `
			capability "filters" {
				operation "convolve" {}
				operation "nonlinearDiffusion" {}
			}
		`,
	})
	mod := fakeModule{
		name:   "filters",
		handle: capability.NewHandle("filters", "", map[string]any{"convolve": 1}),
	}

	require.Panics(t, func() {
		app.NewApp(&testutil.SafeBuffer{}, testConfig(manifests), mod)
	})
}

func TestNewApp_PanicsOnMalformedManifest(t *testing.T) {
	disableCore(t)
	manifests := testutil.WriteManifests(t, map[string]string{
		"broken.hcl": `capability "filters" {`,
	})

	require.Panics(t, func() {
		app.NewApp(&testutil.SafeBuffer{}, testConfig(manifests))
	})
}

func TestRun_VersionReportsCoreState(t *testing.T) {
	disableCore(t)
	buf := &testutil.SafeBuffer{}
	manifests := testutil.WriteManifests(t, nil)
	cfg := testConfig(manifests)
	cfg.ShowVersion = true

	a := app.NewApp(buf, cfg, fakeModule{name: "filters", handle: capability.NewHandle("filters", "", nil)})
	require.NoError(t, a.Run(context.Background(), cfg))

	assert.Contains(t, buf.String(), "visiongo "+app.Version)
	assert.Contains(t, buf.String(), "native core unavailable")
}

func TestRun_DescribeListsBindingStates(t *testing.T) {
	disableCore(t)
	buf := &testutil.SafeBuffer{}
	manifests := testutil.WriteManifests(t, nil)
	cfg := testConfig(manifests)

	a := app.NewApp(buf, cfg, fakeModule{name: "filters", handle: capability.NewHandle("filters", "", nil)})
	require.NoError(t, a.Run(context.Background(), cfg))

	out := buf.String()
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "deferred")
	assert.Contains(t, out, "filters")
}

func TestRun_SearchListsMatchesOrReportsNone(t *testing.T) {
	enableFakeCore(t)
	buf := &testutil.SafeBuffer{}
	manifests := testutil.WriteManifests(t, map[string]string{
		"filters.hcl": `
			capability "filters" {
				operation "gaussianSmoothing" {}
			}
		`,
	})
	cfg := testConfig(manifests)
	cfg.Search = "gauss"
	mod := fakeModule{
		name:   "filters",
		handle: capability.NewHandle("filters", "", map[string]any{"gaussianSmoothing": 1}),
	}

	a := app.NewApp(buf, cfg, mod)
	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, buf.String(), "filters.gaussianSmoothing")

	buf2 := &testutil.SafeBuffer{}
	cfg2 := testConfig(manifests)
	cfg2.Search = "watershed"
	a2 := app.NewApp(buf2, cfg2, mod)
	require.NoError(t, a2.Run(context.Background(), cfg2))
	assert.Contains(t, buf2.String(), `no attribute matching "watershed" found`)
}

// End-to-end over the compiled-in modules and the shipped manifests.
func TestRun_OpAppliesOperationToImageFile(t *testing.T) {
	enableFakeCore(t)
	ctx := context.Background()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.png")
	outPath := filepath.Join(dir, "out.png")

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}
	require.NoError(t, impex.WriteImage(ctx, src, inPath))

	cfg := testConfig("../../manifests")
	cfg.Op = "colors.brightness"
	cfg.InPath = inPath
	cfg.OutPath = outPath
	cfg.Params = map[string]string{"offset": "50"}

	a := app.NewApp(&testutil.SafeBuffer{}, cfg)
	require.NoError(t, a.Run(ctx, cfg))

	got, err := impex.ReadImage(ctx, outPath)
	require.NoError(t, err)
	r, _, _, _ := got.At(1, 1).RGBA()
	assert.Equal(t, uint32(150), r>>8)
}

func TestRun_OpOnDeferredCapabilityFails(t *testing.T) {
	disableCore(t)
	cfg := testConfig("../../manifests")
	cfg.Op = "filters.gaussianSmoothing"
	cfg.InPath = "in.png"
	cfg.OutPath = "out.png"

	a := app.NewApp(&testutil.SafeBuffer{}, cfg)
	err := a.Run(context.Background(), cfg)

	var unavailable *capability.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "filters", unavailable.Capability)
}

func TestRun_OpValidation(t *testing.T) {
	enableFakeCore(t)
	cfg := testConfig("../../manifests")
	cfg.InPath = "in.png"
	cfg.OutPath = "out.png"
	a := app.NewApp(&testutil.SafeBuffer{}, cfg)
	ctx := context.Background()

	cfg.Op = "nodot"
	require.ErrorContains(t, a.Run(ctx, cfg), "want capability.attribute")

	cfg.Op = "filters.gaussianSmoothing"
	cfg.Params = map[string]string{"radius": "3"}
	require.ErrorContains(t, a.Run(ctx, cfg), `does not accept param "radius"`)

	cfg.Params = map[string]string{"sigma": "wide"}
	require.ErrorContains(t, a.Run(ctx, cfg), "is not a valid number")
}
