package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/hqlc/hql/internal/driver"
)

// TestFixtures compiles every .hql file under testdata/fixtures and pins
// its emitted JavaScript with go-snaps, the way the teacher's
// internal/interp/fixture_test.go pins interpreter output against a
// directory of script fixtures.
func TestFixtures(t *testing.T) {
	entries, err := os.ReadDir("testdata/fixtures")
	if err != nil {
		t.Fatalf("reading fixtures dir: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".hql" {
			continue
		}
		name := entry.Name()
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata/fixtures", name))
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			res, err := driver.Compile(context.Background(), string(src), driver.Options{
				Filename:    name,
				EmitHelpers: true,
			})
			if err != nil {
				t.Fatalf("Compile(%s) returned error: %v (diagnostics: %v)", name, err, res.Diagnostics)
			}
			snaps.MatchSnapshot(t, name, res.Code)
		})
	}
}
