package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/xy-planning-network/responder"
)

// AssetsBase is the directory bundled static assets are served from.
const AssetsBase = "static"

// AssetURI encloses the environment and filesystem so when called executing a template,
// emits the URI of a static asset.
//
// Outside of development, AssetURI prefers a fingerprinted copy of the asset,
// e.g., static/app-3f2a1c.js for app.js.
func AssetURI(env responder.Environment, filesys fs.FS) func(string) string {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	return func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")

		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			return fmt.Sprintf("/%s/%s", AssetsBase, assetPath)

		default:
			ext := path.Ext(assetPath)
			glob := fmt.Sprintf("%s/%s-*%s", AssetsBase, strings.TrimSuffix(assetPath, ext), ext)
			matches, err := fs.Glob(filesys, glob)
			if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
				return fmt.Sprintf("/%s/%s", AssetsBase, assetPath)
			}

			return "/" + matches[0]
		}
	}
}
