package storage // import "github.com/seowoojae/shelfd/storage"

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// CoverStore keeps mirrored book covers on disk, one webp file per book.
type CoverStore struct {
	root string
}

func NewCoverStore(dataDir string) *CoverStore {
	return &CoverStore{root: filepath.Join(dataDir, "covers")}
}

// Path returns the file a book's mirrored cover lives at. The file may not
// exist yet.
func (s *CoverStore) Path(bookID int) string {
	return filepath.Join(s.root, strconv.Itoa(bookID)+".webp")
}

func (s *CoverStore) Has(bookID int) bool {
	_, err := os.Stat(s.Path(bookID))
	return err == nil
}

// Save decodes the downloaded image and stores it as webp. The source format
// is whatever the catalog serves, usually jpeg.
func (s *CoverStore) Save(bookID int, r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "failed to decode cover image")
	}

	if err := os.MkdirAll(s.root, os.ModePerm); err != nil {
		return errors.Wrap(err, "failed to create covers dir")
	}

	f, err := os.Create(s.Path(bookID))
	if err != nil {
		return errors.Wrap(err, "failed to create cover file")
	}
	defer f.Close()

	if err := webp.Encode(f, img, &webp.Options{Quality: 80}); err != nil {
		os.Remove(s.Path(bookID))
		return errors.Wrap(err, "failed to encode cover")
	}
	return nil
}

func (s *CoverStore) Remove(bookID int) error {
	err := os.Remove(s.Path(bookID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
