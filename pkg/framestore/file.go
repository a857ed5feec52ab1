package framestore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

// FileWriter is a Writer backed by a file; paths ending with ".gz" are
// gzip-compressed.
type FileWriter struct {
	*Writer
	Path string

	file     *os.File
	gzWriter *gzip.Writer
	closed   bool
}

func IsCompressedPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

func Create(
	ctx context.Context,
	path string,
) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create '%s': %w", ErrStoreWrite, path, err)
	}

	fw := &FileWriter{
		Path: path,
		file: f,
	}
	var out io.Writer = f
	if IsCompressedPath(path) {
		logger.Debugf(ctx, "the frame store '%s' will be gzip-compressed", path)
		fw.gzWriter = gzip.NewWriter(f)
		out = fw.gzWriter
	}
	fw.Writer = NewWriter(out)
	return fw, nil
}

func (fw *FileWriter) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	var result *multierror.Error
	if err := fw.Writer.out.Flush(); err != nil {
		result = multierror.Append(result, fmt.Errorf("unable to flush: %w", err))
	}
	if fw.gzWriter != nil {
		if err := fw.gzWriter.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("unable to finalize the gzip stream: %w", err))
		}
	}
	if err := fw.file.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("unable to close '%s': %w", fw.Path, err))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return nil
}

// LoadFile loads a store from disk, transparently decompressing gzip
// content.
func LoadFile(
	ctx context.Context,
	path string,
) (_ret []frame.Text, _err error) {
	logger.Debugf(ctx, "LoadFile('%s')", path)
	defer func() { logger.Debugf(ctx, "/LoadFile('%s'): %d frames, %v", path, len(_ret), _err) }()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open '%s': %w", ErrStoreRead, path, err)
	}
	defer f.Close()

	if stat, err := f.Stat(); err == nil {
		logger.Debugf(ctx, "the frame store '%s' is %s", path, humanize.Bytes(uint64(stat.Size())))
	}

	r := bufio.NewReader(f)
	var src io.Reader = r
	magic, err := r.Peek(len(gzipMagic))
	switch {
	case err == nil && bytes.Equal(magic, gzipMagic):
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to open the gzip stream of '%s': %w", ErrStoreRead, path, err)
		}
		defer gzReader.Close()
		src = gzReader
	case err != nil && !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("%w: unable to read '%s': %w", ErrStoreRead, path, err)
	}

	return Load(src)
}
