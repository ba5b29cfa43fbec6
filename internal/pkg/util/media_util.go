package util

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const thumbnailMaxSide = 512

// NormalizeThumbnail 解码上传的图片并统一为限定边长的 PNG
// 返回处理后的字节流与其长度
func NormalizeThumbnail(reader io.Reader) (io.Reader, int64, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("图片解码失败: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > thumbnailMaxSide || bounds.Dy() > thumbnailMaxSide {
		img = imaging.Fit(img, thumbnailMaxSide, thumbnailMaxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, 0, fmt.Errorf("图片编码失败: %w", err)
	}

	return &buf, int64(buf.Len()), nil
}
