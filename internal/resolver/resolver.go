// Package resolver is a default, filesystem-backed implementation of the
// driver's import resolver hook (spec.md §4.E/§6): it is not part of the
// core pipeline, but the concrete collaborator cmd/hqlc wires in by
// default. Grounded on esbuild's internal/resolver package.json/
// node_modules lookup conventions, scaled down to the two fields HQL
// imports actually need.
package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hqlc/hql/internal/driver"
	"github.com/tidwall/gjson"
)

// FileResolver resolves HQL import specifiers against a local
// node_modules-style layout rooted at Root.
type FileResolver struct {
	Root string
}

// isBareHostURL reports whether specifier looks like a URL naming a host
// to import from directly, rather than a local or package specifier
// (e.g. "https://cdn.skypack.dev/lodash", "node:fs").
func isBareHostURL(specifier string) bool {
	for _, scheme := range []string{"http://", "https://", "node:"} {
		if strings.HasPrefix(specifier, scheme) {
			return true
		}
	}
	return false
}

// Resolve implements the driver.ImportResolver signature.
func (r FileResolver) Resolve(specifier string) (driver.ImportResolution, error) {
	if isBareHostURL(specifier) {
		return driver.ImportResolution{Kind: driver.ImportPassthrough, Payload: specifier}, nil
	}

	path, err := r.entryFile(specifier)
	if err != nil {
		return driver.ImportResolution{}, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return driver.ImportResolution{}, err
	}
	return driver.ImportResolution{Kind: driver.ImportInline, Payload: string(src)}, nil
}

// entryFile locates the HQL source file a specifier resolves to: a
// relative path is read as-is; a bare package name is looked up under
// node_modules/<name>/package.json's "main" or "exports" field, the way
// esbuild's resolver consults package.json before falling back to
// index.hql.
func (r FileResolver) entryFile(specifier string) (string, error) {
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") {
		return filepath.Join(r.Root, specifier), nil
	}

	pkgDir := filepath.Join(r.Root, "node_modules", specifier)
	pkgJSON := filepath.Join(pkgDir, "package.json")
	data, err := os.ReadFile(pkgJSON)
	if err != nil {
		return "", errors.New("cannot resolve package " + specifier + ": " + err.Error())
	}

	main := gjson.GetBytes(data, "exports").String()
	if main == "" {
		main = gjson.GetBytes(data, "main").String()
	}
	if main == "" {
		main = "index.hql"
	}
	return filepath.Join(pkgDir, main), nil
}
