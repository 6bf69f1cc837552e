package adaptors

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// DirArtifactStore serves the regular files of one directory as artifacts.
// List orders by modification time, oldest first, so the last name is the
// most recently written file.
type DirArtifactStore struct {
	dir string
	log *log.Logger
}

func NewDirArtifactStore(dir string, log *log.Logger) *DirArtifactStore {
	return &DirArtifactStore{dir: dir, log: log}
}

func (d *DirArtifactStore) Load(ctx context.Context, name string) (*models.Artifact, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, nil
	}

	path := filepath.Join(d.dir, name)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, `failed to stat artifact`)
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, `failed to read artifact`)
	}

	d.log.WithContext(ctx).WithFields(log.Fields{
		`artifact`: name,
		`size`:     humanize.IBytes(uint64(len(data))),
		`modified`: humanize.Time(info.ModTime()),
	}).Debug(`artifact loaded from disk`)

	return &models.Artifact{
		Name:       name,
		MimeType:   mime.TypeByExtension(filepath.Ext(name)),
		Data:       data,
		AttachedAt: info.ModTime(),
	}, nil
}

func (d *DirArtifactStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, errors.Wrap(err, `failed to list artifact directory`)
	}

	type file struct {
		name string
		info os.FileInfo
	}
	var files []file
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			d.log.WithContext(ctx).WithError(err).Warnf(`skipping artifact %s`, e.Name())
			continue
		}
		files = append(files, file{name: e.Name(), info: info})
	}

	sort.SliceStable(files, func(i, j int) bool {
		ti, tj := files[i].info.ModTime(), files[j].info.ModTime()
		if ti.Equal(tj) {
			return files[i].name < files[j].name
		}
		return ti.Before(tj)
	})

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	return names, nil
}
