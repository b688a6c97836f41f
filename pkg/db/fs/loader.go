// Package fs serves collections from JSON dumps on local disk, one
// <collection>.json file per collection, in the same envelope the REST
// backend returns. It is used for demos and fixtures.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/byxorna/doclib/pkg/db"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
)

var (
	// StorageExtension is appended to the collection name to find its dump
	StorageExtension = ".json"

	ErrNotADirectory = fmt.Errorf("storage path is not a directory")
)

type Loader struct {
	Directory string `validate:"required"`
}

// New validates dir and returns a loader over it.
func New(dir string) (*Loader, error) {
	expandedPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}

	l := Loader{Directory: expandedPath}
	if err := validator.New().Struct(l); err != nil {
		return nil, fmt.Errorf("error validating storage provider: %w", err)
	}

	finfo, err := os.Stat(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to stat %s: %w", expandedPath, err)
	}
	if !finfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", expandedPath, ErrNotADirectory)
	}
	return &l, nil
}

// StoragePath is where the dump of collection lives.
func (x *Loader) StoragePath(collection v1.CollectionTarget) string {
	return filepath.Join(x.Directory, collection.OrDefault().String()+StorageExtension)
}

// FetchDocuments reads the dump of collection. A missing dump reports the
// same way a missing list does on the server.
func (x *Loader) FetchDocuments(ctx context.Context, collection v1.CollectionTarget) ([]v1.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.NetworkError{Err: err}
	}

	fn := x.StoragePath(collection)
	log.Printf("loading %s", fn)
	f, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ne := db.NewStatusError(http.StatusNotFound, fmt.Sprintf("no collection %q in %s", collection.OrDefault(), x.Directory))
			ne.Err = err
			return nil, ne
		}
		return nil, &db.NetworkError{Err: err}
	}
	defer f.Close()

	recs, err := db.DecodeRecords(f)
	if err != nil {
		return nil, err
	}

	// dumps are not guaranteed to be ordered, the query contract is.
	// Unparsable timestamps keep their relative order at the end.
	at := make(map[int]time.Time, len(recs))
	for i, r := range recs {
		if t, ok := db.ParseTimestamp(r.Modified, nil); ok {
			at[i] = t
		}
	}
	idx := make([]int, len(recs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		ti, iok := at[idx[i]]
		tj, jok := at[idx[j]]
		if iok != jok {
			return iok
		}
		return iok && ti.After(tj)
	})
	sorted := make([]v1.RawRecord, len(recs))
	for i, k := range idx {
		sorted[i] = recs[k]
	}
	return sorted, nil
}

// Collections lists the collections available in the directory.
func (x *Loader) Collections() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(x.Directory, "*"+StorageExtension))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), StorageExtension))
	}
	sort.Strings(names)
	return names, nil
}
