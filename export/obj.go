// Package export writes generated meshes to interchange formats.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/collisionviz"
)

// WriteOBJ writes mesh as a Wavefront OBJ object called name. Every submesh
// becomes a group. Faces reference positions, uvs and normals with the same
// 1-based index; missing streams are left out of the face tuples.
func WriteOBJ(w io.Writer, name string, mesh *collisionviz.RenderMesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", name)
	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
	}

	corner := cornerFormat(len(mesh.UVs) > 0, len(mesh.Normals) > 0)
	writeFaces := func(indices []uint32) {
		for i := 0; i+2 < len(indices); i += 3 {
			bw.WriteString("f")
			for _, idx := range indices[i : i+3] {
				corner(bw, idx+1)
			}
			bw.WriteByte('\n')
		}
	}

	if len(mesh.Submeshes) == 0 {
		writeFaces(mesh.Indices)
	}
	for _, sm := range mesh.Submeshes {
		fmt.Fprintf(bw, "g %s\n", sm.Name)
		writeFaces(mesh.Indices[sm.IndexOffset : sm.IndexOffset+sm.IndexCount])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj %s: %w", name, err)
	}
	return nil
}

func cornerFormat(uvs, normals bool) func(w *bufio.Writer, idx uint32) {
	switch {
	case uvs && normals:
		return func(w *bufio.Writer, idx uint32) { fmt.Fprintf(w, " %d/%d/%d", idx, idx, idx) }
	case normals:
		return func(w *bufio.Writer, idx uint32) { fmt.Fprintf(w, " %d//%d", idx, idx) }
	case uvs:
		return func(w *bufio.Writer, idx uint32) { fmt.Fprintf(w, " %d/%d", idx, idx) }
	default:
		return func(w *bufio.Writer, idx uint32) { fmt.Fprintf(w, " %d", idx) }
	}
}

// ErrInvalidName is returned by SaveOBJ for mesh names that are not a plain
// file name.
var ErrInvalidName = errors.New("mesh name is not a valid file name")

// ValidName reports whether name can be used as a file name inside an output
// directory: non-empty, no path separators, not "." or "..".
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// SaveOBJ writes mesh to dir/<mesh name>.obj, creating dir if needed, and
// returns the file path. Existing files are overwritten.
func SaveOBJ(dir string, mesh *collisionviz.RenderMesh) (string, error) {
	if !ValidName(mesh.Name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, mesh.Name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, mesh.Name+".obj")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteOBJ(f, mesh.Name, mesh); err != nil {
		return "", err
	}
	return path, f.Close()
}
