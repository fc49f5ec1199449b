// Test Type: Unit Test
// Description: Tests for project location and installed package discovery

package composer_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgprune/pkg/composer"
	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/testutil"
	"github.com/arthur-debert/pkgprune/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name       string
		tree       testutil.Tree
		vars       map[string]string
		wantVendor string
		wantFile   string
	}{
		{
			name:       "defaults",
			tree:       testutil.Tree{"composer.json": `{"name": "acme/app"}`},
			wantVendor: "vendor",
			wantFile:   "composer.json",
		},
		{
			name:       "vendor_dir_from_manifest",
			tree:       testutil.Tree{"composer.json": `{"config": {"vendor-dir": "lib/deps"}}`},
			wantVendor: "lib/deps",
			wantFile:   "composer.json",
		},
		{
			name:       "vendor_dir_env_wins",
			tree:       testutil.Tree{"composer.json": `{"config": {"vendor-dir": "lib/deps"}}`},
			vars:       map[string]string{composer.EnvVendorDir: "third_party"},
			wantVendor: "third_party",
			wantFile:   "composer.json",
		},
		{
			name:       "manifest_env",
			tree:       testutil.Tree{"build/app.json": `{}`},
			vars:       map[string]string{composer.EnvManifest: "build/app.json"},
			wantVendor: "build/vendor",
			wantFile:   "build/app.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			e.WriteTree("", tt.tree)
			locator := composer.New(composer.Options{FS: e.FS, Getenv: env(tt.vars)})

			project, err := locator.Locate(e.Root)
			require.NoError(t, err)
			assert.Equal(t, e.Path(tt.wantFile), project.ManifestPath)
			assert.Equal(t, filepath.Dir(e.Path(tt.wantFile)), project.Dir)
			assert.Equal(t, e.Path(tt.wantVendor), project.VendorDir)
		})
	}
}

func TestLocate_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		_, err := composer.New(composer.Options{FS: e.FS, Getenv: env(nil)}).Locate(e.Root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("invalid_json", func(t *testing.T) {
		e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		e.WriteTree("", testutil.Tree{"composer.json": `{"name": `})
		_, err := composer.New(composer.Options{FS: e.FS, Getenv: env(nil)}).Locate(e.Root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})
}

const installedV2 = `{
    "packages": [
        {"name": "acme/widgets", "type": "library", "install-path": "../acme/widgets"},
        {"name": "acme/custom", "type": "library", "install-path": "/opt/custom"},
        {"name": "acme/plain"},
        {"name": "acme/bundle", "type": "metapackage", "install-path": null},
        {"type": "library"}
    ],
    "dev": true
}`

const installedV1 = `[
    {"name": "acme/widgets", "type": "library"},
    {"name": "acme/bundle", "type": "metapackage"}
]`

func TestInstalledPackages(t *testing.T) {
	t.Run("v2_layout", func(t *testing.T) {
		e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		e.WriteTree("", testutil.Tree{
			"composer.json":                  `{}`,
			"vendor/composer/installed.json": installedV2,
		})
		locator := composer.New(composer.Options{FS: e.FS, Getenv: env(nil)})
		project, err := locator.Locate(e.Root)
		require.NoError(t, err)

		packages, err := locator.InstalledPackages(project)
		require.NoError(t, err)

		assert.Equal(t, []types.Package{
			{Name: "acme/widgets", Type: "library", InstallPath: e.Path("vendor/acme/widgets")},
			{Name: "acme/custom", Type: "library", InstallPath: filepath.Clean("/opt/custom")},
			{Name: "acme/plain", Type: "library", InstallPath: e.Path("vendor/acme/plain")},
			{Name: "acme/bundle", Type: "metapackage"},
		}, packages)
	})

	t.Run("v1_layout", func(t *testing.T) {
		e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		e.WriteTree("", testutil.Tree{
			"composer.json":                  `{}`,
			"vendor/composer/installed.json": installedV1,
		})
		locator := composer.New(composer.Options{FS: e.FS, Getenv: env(nil)})
		project, err := locator.Locate(e.Root)
		require.NoError(t, err)

		packages, err := locator.InstalledPackages(project)
		require.NoError(t, err)
		require.Len(t, packages, 2)
		assert.Equal(t, e.Path("vendor/acme/widgets"), packages[0].InstallPath)
		assert.True(t, packages[1].IsMeta())
	})

	t.Run("nothing_installed", func(t *testing.T) {
		e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		e.WriteTree("", testutil.Tree{"composer.json": `{}`})
		locator := composer.New(composer.Options{FS: e.FS, Getenv: env(nil)})
		project, err := locator.Locate(e.Root)
		require.NoError(t, err)

		packages, err := locator.InstalledPackages(project)
		require.NoError(t, err)
		assert.Empty(t, packages)
	})

	t.Run("malformed", func(t *testing.T) {
		for name, content := range map[string]string{
			"invalid_json": `[{"name": `,
			"no_list":      `{"packages": {"a": 1}}`,
			"scalar":       `"x"`,
		} {
			t.Run(name, func(t *testing.T) {
				e := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
				e.WriteTree("", testutil.Tree{
					"composer.json":                  `{}`,
					"vendor/composer/installed.json": content,
				})
				locator := composer.New(composer.Options{FS: e.FS, Getenv: env(nil)})
				project, err := locator.Locate(e.Root)
				require.NoError(t, err)

				_, err = locator.InstalledPackages(project)
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
			})
		}
	})
}

func TestProjectInstallPath(t *testing.T) {
	project := &composer.Project{VendorDir: filepath.FromSlash("/app/vendor")}

	assert.Equal(t, filepath.FromSlash("/app/vendor/acme/a"), project.InstallPath("acme/a", ""))
	assert.Equal(t, filepath.FromSlash("/app/vendor/acme/a"), project.InstallPath("acme/a", "../acme/a"))
	assert.Equal(t, filepath.FromSlash("/app/packages/a"), project.InstallPath("acme/a", "../../packages/a"))
	assert.Equal(t, filepath.FromSlash("/app/vendor/composer/installed.json"), project.InstalledPath())
}
