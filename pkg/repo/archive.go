package repo

import (
	"archive/tar"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/object"
)

// Archive writes the snapshot of target as a zstd-compressed tar stream.
// Entries follow tree order, carry mode 0644 and use the commit timestamp as
// their modification time. The working tree, refs and HEAD are not touched.
func (r *Repo) Archive(w io.Writer, target string) error {
	commitHash, _, err := r.Resolve(target)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	c, err := r.Store.ReadCommit(commitHash)
	if err != nil {
		return storeError("archive: read commit", err)
	}
	tr, err := r.Store.ReadTree(c.TreeHash)
	if err != nil {
		return storeError("archive: read tree", err)
	}
	entries := append([]object.TreeEntry(nil), tr.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	modTime, err := time.ParseInLocation(object.TimestampLayout, c.Timestamp, time.Local)
	if err != nil {
		modTime = time.Time{}
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("archive: zstd: %w", err)
	}
	tw := tar.NewWriter(zw)

	for _, e := range entries {
		if err := checkRestorePath(e.Path); err != nil {
			zw.Close()
			return fmt.Errorf("archive: %w", err)
		}
		data, err := r.Store.Get(e.BlobHash)
		if err != nil {
			zw.Close()
			return storeError("archive "+e.Path, err)
		}
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     e.Path,
			Mode:     0o644,
			Size:     int64(len(data)),
			ModTime:  modTime,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			zw.Close()
			return ioError("archive: header "+e.Path, err)
		}
		if _, err := tw.Write(data); err != nil {
			zw.Close()
			return ioError("archive: write "+e.Path, err)
		}
	}

	if err := tw.Close(); err != nil {
		zw.Close()
		return ioError("archive: close tar", err)
	}
	if err := zw.Close(); err != nil {
		return ioError("archive: close zstd", err)
	}
	r.Logger.Debug("archive written", zap.String("commit", string(commitHash)), zap.Int("files", len(entries)))
	return nil
}
