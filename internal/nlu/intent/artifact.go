package intent

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Artifact is one trained vectorizer, model and label encoder. The three
// parts are only ever built, saved and loaded together.
type Artifact struct {
	Version    string
	TrainedAt  time.Time
	Vectorizer *Vectorizer
	Model      *Model
	Labels     *LabelEncoder
}

// predict returns raw class probabilities for text in label order.
func (a *Artifact) predict(text string) ([]float64, error) {
	x := a.Vectorizer.transform(text)
	if a.Model.Classes() != len(a.Labels.Classes) {
		return nil, fmt.Errorf("%w: %d classes in model, %d labels", ErrDimensionMismatch, a.Model.Classes(), len(a.Labels.Classes))
	}
	for _, w := range a.Model.Weights {
		if len(w) != a.Vectorizer.Features() {
			return nil, fmt.Errorf("%w: %d weights, %d features", ErrDimensionMismatch, len(w), a.Vectorizer.Features())
		}
	}
	probs := make([]float64, a.Model.Classes())
	a.Model.probabilities(x, probs)
	return probs, nil
}

// Each blob carries the version of the run that produced it.
type vectorizerBlob struct {
	Version    string
	TrainedAt  time.Time
	Vectorizer *Vectorizer
}

type modelBlob struct {
	Version string
	Model   *Model
}

type labelBlob struct {
	Version string
	Labels  *LabelEncoder
}

// artifactStore persists artifacts under dir as
//
//	dir/CURRENT            name of the live version directory
//	dir/<version>/*.gob    the three blobs
//
// A new version is written to a temp directory, renamed into place, and
// only then published by renaming a new CURRENT over the old one.
type artifactStore struct {
	dir string
}

func newArtifactStore(dir string) *artifactStore {
	return &artifactStore{dir: dir}
}

func newVersion() string {
	return time.Now().UTC().Format("20060102T150405") + "-" + uuid.NewString()[:8]
}

// save writes a and makes it current. It returns the previous version, if any.
func (s *artifactStore) save(a *Artifact) (string, error) {
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return "", fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.MkdirTemp(s.dir, artifactTmpPrefix)
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	blobs := map[string]any{
		artifactVectorizer:   vectorizerBlob{Version: a.Version, TrainedAt: a.TrainedAt, Vectorizer: a.Vectorizer},
		artifactModel:        modelBlob{Version: a.Version, Model: a.Model},
		artifactLabelEncoder: labelBlob{Version: a.Version, Labels: a.Labels},
	}
	for name, blob := range blobs {
		if err := writeGob(filepath.Join(tmp, name), blob); err != nil {
			return "", err
		}
	}

	if err := os.Rename(tmp, filepath.Join(s.dir, a.Version)); err != nil {
		return "", fmt.Errorf("publish version dir: %w", err)
	}

	previous, _ := s.current()
	if err := writeFileAtomic(filepath.Join(s.dir, artifactCurrentFile), []byte(a.Version+"\n")); err != nil {
		return "", fmt.Errorf("publish current pointer: %w", err)
	}
	return previous, nil
}

// current returns the live version name.
func (s *artifactStore) current() (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, artifactCurrentFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrModelNotTrained
	}
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(string(raw))
	if version == "" {
		return "", ErrModelNotTrained
	}
	return version, nil
}

// load reads the live artifact and checks that all blobs share its version.
func (s *artifactStore) load() (*Artifact, error) {
	version, err := s.current()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(s.dir, version)

	var (
		vb vectorizerBlob
		mb modelBlob
		lb labelBlob
	)
	if err := readGob(filepath.Join(dir, artifactVectorizer), &vb); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, artifactModel), &mb); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, artifactLabelEncoder), &lb); err != nil {
		return nil, err
	}
	if vb.Version != version || mb.Version != version || lb.Version != version {
		return nil, fmt.Errorf("%w: current %s, vectorizer %s, model %s, labels %s",
			ErrArtifactMismatch, version, vb.Version, mb.Version, lb.Version)
	}

	return &Artifact{
		Version:    version,
		TrainedAt:  vb.TrainedAt,
		Vectorizer: vb.Vectorizer,
		Model:      mb.Model,
		Labels:     lb.Labels,
	}, nil
}

// prune removes version directories other than keep.
func (s *artifactStore) prune(keep string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if !e.IsDir() || e.Name() == keep || strings.HasPrefix(e.Name(), artifactTmpPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeGob(path string, v any) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), artifactTmpPrefix+filepath.Base(path))
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, fileMode); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
