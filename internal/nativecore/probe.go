// Package nativecore locates the toolkit's native shared libraries on the
// host. It supplies the "core available" signal the capability loader keys
// off, plus per-library lookups for capabilities whose manifests declare
// native requirements.
package nativecore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/vk/visiongo/internal/ctxlog"
)

const (
	// CoreLibrary is the base name of the mandatory native extension.
	CoreLibrary = "vigracore"

	// EnvLibraryPath lists extra directories searched for native libraries,
	// separated by the platform path-list separator.
	EnvLibraryPath = "VISIONGO_LIBRARY_PATH"

	// EnvDisableCore forces the core probe to report unavailable when set
	// to "1". Used by tests and for diagnosing degraded deployments.
	EnvDisableCore = "VISIONGO_DISABLE_CORE"

	// EnvCoreVersion overrides the version reported for a located core.
	EnvCoreVersion = "VISIONGO_CORE_VERSION"
)

// defaultCoreVersion is reported when the core library carries no version
// metadata of its own.
const defaultCoreVersion = "1.12.2"

// CoreUnavailableError reports that the mandatory native core failed to
// load. It is recorded once and propagated implicitly to every optional
// capability's deferred state; it never aborts startup.
type CoreUnavailableError struct {
	Reason string
}

// Error implements the error interface for CoreUnavailableError.
func (e *CoreUnavailableError) Error() string {
	return "native core unavailable: " + e.Reason
}

// Info describes a successfully probed native core.
type Info struct {
	Version *semver.Version
	Path    string
}

// Probe searches a fixed list of directories for native shared libraries.
type Probe struct {
	dirs []string
}

// NewProbe builds a Probe over the platform's default library directories,
// any directories named in VISIONGO_LIBRARY_PATH, and the given extras.
// Extras are searched first so they can shadow system installs.
func NewProbe(extraDirs ...string) *Probe {
	var dirs []string
	dirs = append(dirs, extraDirs...)
	if env := os.Getenv(EnvLibraryPath); env != "" {
		for _, d := range strings.Split(env, string(os.PathListSeparator)) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	dirs = append(dirs, defaultDirs()...)
	return &Probe{dirs: dirs}
}

// NewProbeWithDirs builds a Probe that searches exactly the given
// directories, ignoring the environment and the platform defaults. Tests
// use this to keep host libraries out of the search.
func NewProbeWithDirs(dirs ...string) *Probe {
	return &Probe{dirs: dirs}
}

// Library locates a native shared library by base name (e.g. "fftw3") and
// returns the path of the first match.
func (p *Probe) Library(name string) (string, error) {
	for _, dir := range p.dirs {
		for _, pattern := range libPatterns(name) {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}
			if len(matches) > 0 {
				return matches[0], nil
			}
		}
	}
	return "", fmt.Errorf("native library %q not found (searched %d directories)", name, len(p.dirs))
}

// Core probes for the mandatory native extension and reports its version.
// Failure is returned as a *CoreUnavailableError and is expected on hosts
// without the native toolkit installed.
func (p *Probe) Core(ctx context.Context) (*Info, error) {
	logger := ctxlog.FromContext(ctx)

	if os.Getenv(EnvDisableCore) == "1" {
		return nil, &CoreUnavailableError{Reason: "disabled via " + EnvDisableCore}
	}

	path, err := p.Library(CoreLibrary)
	if err != nil {
		return nil, &CoreUnavailableError{Reason: err.Error()}
	}

	raw := os.Getenv(EnvCoreVersion)
	if raw == "" {
		raw = defaultCoreVersion
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, &CoreUnavailableError{
			Reason: fmt.Sprintf("invalid core version %q: %v", raw, err),
		}
	}

	logger.Debug("Native core located.", "path", path, "version", version.String())
	return &Info{Version: version, Path: path}, nil
}

// defaultDirs returns the platform's conventional shared-library locations.
func defaultDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/usr/local/lib", "/opt/homebrew/lib", "/usr/lib"}
	case "windows":
		// Installers drop the native DLLs next to the executable.
		exe, err := os.Executable()
		if err != nil {
			return nil
		}
		dir := filepath.Dir(exe)
		return []string{filepath.Join(dir, "dlls"), dir}
	default:
		return []string{
			"/usr/local/lib",
			"/usr/lib",
			"/usr/lib/x86_64-linux-gnu",
			"/lib",
		}
	}
}

// libPatterns returns the file-name globs a library base name may appear
// under, including versioned shared objects like libfftw3.so.3.
func libPatterns(name string) []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"lib" + name + ".dylib", "lib" + name + ".*.dylib"}
	case "windows":
		return []string{name + ".dll", "lib" + name + ".dll"}
	default:
		return []string{"lib" + name + ".so", "lib" + name + ".so.*"}
	}
}
