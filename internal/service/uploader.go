package service

import (
	"context"
	"io"
)

// Uploader 对象存储上传函数，便于测试替换
type Uploader func(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)

// Remover 对象存储删除函数
type Remover func(ctx context.Context, objectName string) error
