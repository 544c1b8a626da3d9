package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/multierr"

	"mbr/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{items: make(map[string]item), file: f}, nil
}

// item is either in-memory data or a path on disk read when report is closed.
type item struct {
	source string
	data   []byte
	stamp  time.Time
}

func (it item) inMemory() bool {
	return it.data != nil
}

// Report collects everything needed to troubleshoot a run: inputs as they
// were read, produced outputs, configuration and logs. It is written as a
// single zip archive on Close.
// NOTE: not safe for concurrent use.
type Report struct {
	items map[string]item
	file  *os.File
}

// Close writes the archive. Calling it on nil report (no report requested)
// is a no-op.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.write()
	return multierr.Append(err, r.file.Close())
}

// Name returns absolute path of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store schedules file or directory at path to be put into report under name.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if p, err := filepath.Abs(path); err == nil {
		path = p
	}
	if old, exists := r.items[name]; exists && old.source != path {
		panic(fmt.Sprintf("report entry %q already refers to %s, cannot store %s", name, old.source, path))
	}
	r.items[name] = item{source: path}
}

// StoreData puts copy of data into report under name. When name is taken
// numeric suffix is added, so the same input could be stored more than once.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	unique := name
	for n := 2; ; n++ {
		if _, exists := r.items[unique]; !exists {
			break
		}
		unique = fmt.Sprintf("%s-%d", name, n)
	}
	if data == nil {
		data = []byte{}
	}
	r.items[unique] = item{source: name, data: bytes.Clone(data), stamp: time.Now()}
}

// write puts MANIFEST and all collected items into archive. Entries which
// cannot be read are skipped and reported after the rest is written.
func (r *Report) write() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		err = multierr.Append(err, arc.Close())
	}()

	now := time.Now()
	names := slices.Sorted(maps.Keys(r.items))

	var manifest bytes.Buffer
	for _, name := range names {
		it := r.items[name]
		stamp := it.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(&manifest, "%s\t%s\t%s\n", stamp.UTC().Format(time.RFC3339), name, it.source)
	}
	if err := addFile(arc, "MANIFEST", now, &manifest); err != nil {
		return err
	}

	for _, name := range names {
		it := r.items[name]
		if it.inMemory() {
			err = multierr.Append(err, addFile(arc, name, it.stamp, bytes.NewReader(it.data)))
			continue
		}
		info, serr := os.Stat(it.source)
		if serr != nil {
			// files which never appeared (no log written, etc.)
			continue
		}
		if info.IsDir() {
			err = multierr.Append(err, addDir(arc, name, it.source))
		} else if info.Mode().IsRegular() {
			err = multierr.Append(err, addFileFrom(arc, name, os.DirFS(filepath.Dir(it.source)), filepath.Base(it.source)))
		}
	}
	return err
}

func addFile(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return fmt.Errorf("unable to add %s to report: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("unable to add %s to report: %w", name, err)
	}
	return nil
}

func addFileFrom(arc *zip.Writer, name string, fsys fs.FS, file string) error {
	f, err := fsys.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	var t time.Time
	if info, err := f.Stat(); err == nil {
		t = info.ModTime()
	}
	return addFile(arc, name, t, f)
}

// addDir puts regular files under dir into archive, relative paths are
// kept under name.
func addDir(arc *zip.Writer, name, dir string) error {
	fsys := os.DirFS(dir)
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return addFileFrom(arc, path.Join(name, p), fsys, p)
	})
}
