package level

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressModel validates the H2B model at path and writes a zstd
// compressed copy next to it as path+".zst". It returns the new file and
// its size in bytes.
func CompressModel(path string) (string, int64, error) {
	if strings.HasSuffix(path, ".zst") {
		return "", 0, fmt.Errorf("%s is already compressed", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	h, err := ParseH2B(f)
	f.Close()
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", path, err)
	}

	dst := path + ".zst"
	out, err := os.Create(dst)
	if err != nil {
		return "", 0, err
	}
	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		out.Close()
		return "", 0, err
	}
	if _, err := h.WriteTo(enc); err != nil {
		enc.Close()
		out.Close()
		return "", 0, fmt.Errorf("write %s: %w", dst, err)
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return "", 0, fmt.Errorf("write %s: %w", dst, err)
	}
	info, err := out.Stat()
	if err != nil {
		out.Close()
		return "", 0, err
	}
	return dst, info.Size(), out.Close()
}
