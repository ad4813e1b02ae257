// Package storage guarda en disco los PDFs servidos bajo /uploads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// URLPrefix ruta pública desde la que el servidor HTTP sirve el directorio de uploads.
const URLPrefix = "/uploads"

// LocalFileStore escribe archivos bajo root y los publica como <publicBase>/uploads/<dir>/<name>.
type LocalFileStore struct {
	root       string
	publicBase string
}

// NewLocalFileStore construye el store. publicBase puede ser vacío (URLs relativas).
func NewLocalFileStore(root, publicBase string) *LocalFileStore {
	return &LocalFileStore{root: root, publicBase: strings.TrimRight(publicBase, "/")}
}

// Root directorio base en disco.
func (s *LocalFileStore) Root() string { return s.root }

// Save escribe data de forma atómica (archivo temporal + rename) y devuelve la URL pública.
func (s *LocalFileStore) Save(_ context.Context, dir, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(dir, "..") {
		return "", fmt.Errorf("storage: nombre inválido %q/%q", dir, name)
	}
	target := filepath.Join(s.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(target, "."+name+"-*")
	if err != nil {
		return "", fmt.Errorf("storage: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("storage: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("storage: permisos: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(target, name)); err != nil {
		return "", fmt.Errorf("storage: mover: %w", err)
	}
	return s.publicBase + path.Join(URLPrefix, filepath.ToSlash(dir), name), nil
}

// Remove borra el archivo apuntado por una URL devuelta por Save. Un archivo inexistente no es error.
func (s *LocalFileStore) Remove(_ context.Context, url string) error {
	p, err := s.pathFor(url)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: eliminar: %w", err)
	}
	return nil
}

// pathFor traduce una URL pública a una ruta dentro de root.
func (s *LocalFileStore) pathFor(url string) (string, error) {
	rel := strings.TrimPrefix(url, s.publicBase)
	if !strings.HasPrefix(rel, URLPrefix+"/") {
		return "", fmt.Errorf("storage: url ajena al directorio de uploads: %q", url)
	}
	rel = path.Clean(strings.TrimPrefix(rel, URLPrefix+"/"))
	if rel == "." || strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return "", fmt.Errorf("storage: url inválida: %q", url)
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}
