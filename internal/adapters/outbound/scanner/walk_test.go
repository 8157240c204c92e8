package scanner

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/abdidvp/moqlint/internal/domain"
)

type dirEntry struct {
	name string
	dir  bool
}

func (e dirEntry) Name() string               { return e.name }
func (e dirEntry) IsDir() bool                { return e.dir }
func (e dirEntry) Type() fs.FileMode          { return 0 }
func (e dirEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrInvalid }

func newWalk(root string) *walk {
	return &walk{
		log:       zap.NewNop(),
		root:      root,
		dialect:   domain.DialectAuto,
		extraSkip: map[string]bool{},
		result:    &domain.ScanResult{RootPath: root},
	}
}

func TestVisit_ErrorBelowRootIsSkipped(t *testing.T) {
	root := t.TempDir()
	w := newWalk(root)
	denied := errors.New("permission denied")

	err := w.visit(filepath.Join(root, "locked"), dirEntry{name: "locked", dir: true}, denied)
	assert.Equal(t, filepath.SkipDir, err)

	err = w.visit(filepath.Join(root, "gone.xml"), dirEntry{name: "gone.xml"}, denied)
	assert.NoError(t, err)

	err = w.visit(filepath.Join(root, "vanished"), nil, denied)
	assert.NoError(t, err)

	assert.Equal(t, 3, w.result.Skipped)
	assert.Empty(t, w.result.Files)
}

func TestVisit_ErrorOnRootIsReturned(t *testing.T) {
	root := t.TempDir()
	denied := errors.New("permission denied")

	err := newWalk(root).visit(root, dirEntry{name: filepath.Base(root), dir: true}, denied)
	assert.ErrorIs(t, err, denied)
}
