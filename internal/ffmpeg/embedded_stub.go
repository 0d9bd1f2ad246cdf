//go:build !ffmpeg_embedded

package ffmpeg

import "io"

// without the ffmpeg_embedded tag resolution goes straight from the cache
// dir to the download
func openEmbeddedAsset(string) (io.ReadCloser, bool, error) {
	return nil, false, nil
}
