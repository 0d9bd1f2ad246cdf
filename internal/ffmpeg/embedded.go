//go:build ffmpeg_embedded

package ffmpeg

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
)

// Release builds copy the platform archive named by assetForPlatform into
// bundled/ and build with -tags ffmpeg_embedded. The bundle is only
// consulted after ZHSUB_FFMPEG_PATH/ZHSUB_FFPROBE_PATH, PATH and the zhsub
// cache dir have all come up empty; a missing archive falls through to the
// download.
//
//go:embed bundled/*
var bundled embed.FS

func openEmbeddedAsset(name string) (io.ReadCloser, bool, error) {
	if name == "" || path.Base(name) != name {
		return nil, false, fmt.Errorf("invalid ffmpeg archive name %q", name)
	}
	archive, err := bundled.Open(path.Join("bundled", name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("open bundled ffmpeg archive: %w", err)
	}
	return archive, true, nil
}
