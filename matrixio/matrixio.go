/*
	matrixio package converts adjacency matrices and shortest path results
	from and to their textual representations.

	Matrices are written as nested integer sequences, e.g. "[[0,1],[1,0]]".
	The literal is parsed as YAML, so whitespace and line breaks are allowed
	anywhere and files may also use YAML block sequences:

		- [0, 1]
		- [1, 0]
*/

package matrixio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mycok/uPath/shortestpath"
)

// ErrSyntax is returned when text cannot be read as a matrix of integers.
var ErrSyntax = errors.New("matrix syntax error")

// TableHeader is the first line written by WriteTable.
const TableHeader = "Vertex\tDistance from source"

// Parse decodes text into a matrix. Every entry must be a plain YAML integer:
// fractional, quoted or null entries are rejected with ErrSyntax instead of
// being converted. Only the syntax is checked here; whether the matrix is
// square is left to graph.New.
func Parse(text string) ([][]int64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty input: %w", ErrSyntax)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, describe(err))
	}

	if len(doc.Content) == 0 || doc.Content[0].ShortTag() == nullTag {
		return nil, fmt.Errorf("no matrix found: %w", ErrSyntax)
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %s: expected a sequence of rows", ErrSyntax, position(root))
	}

	var (
		problems []string
		matrix   = make([][]int64, len(root.Content))
	)

	for u, rowNode := range root.Content {
		if rowNode.Kind != yaml.SequenceNode {
			problems = append(problems, fmt.Sprintf("%s: row %d is not a sequence", position(rowNode), u))
			continue
		}

		row := make([]int64, len(rowNode.Content))
		for v, cell := range rowNode.Content {
			if cell.Kind != yaml.ScalarNode || cell.ShortTag() != intTag {
				problems = append(problems, fmt.Sprintf(
					"%s: entry (%d, %d) %q is not an integer", position(cell), u, v, cell.Value,
				))

				continue
			}

			if err := cell.Decode(&row[v]); err != nil {
				problems = append(problems, fmt.Sprintf(
					"%s: entry (%d, %d): %s", position(cell), u, v, describe(err),
				))
			}
		}

		matrix[u] = row
	}

	if len(problems) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(problems, "; "))
	}

	return matrix, nil
}

const (
	intTag  = "!!int"
	nullTag = "!!null"
)

func position(n *yaml.Node) string {
	return fmt.Sprintf("line %d column %d", n.Line, n.Column)
}

// ReadFile parses the matrix stored in the file at path.
func ReadFile(path string) ([][]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix file: %w", err)
	}

	matrix, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return matrix, nil
}

// describe flattens the yaml error messages into a single line.
func describe(err error) string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return strings.Join(typeErr.Errors, "; ")
	}

	return strings.TrimPrefix(err.Error(), "yaml: ")
}

// WriteTable writes res as tab-separated lines: a TableHeader line followed
// by one "vertex<TAB>distance" line per vertex in index order. Unreachable
// vertices are written with a distance of -1.
func WriteTable(w io.Writer, res *shortestpath.Result) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, TableHeader); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	err := res.Visit(func(v int, dist int64) error {
		_, err := fmt.Fprintf(bw, "%d\t%d\n", v, dist)

		return err
	})
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// WriteTableFile writes res to the file at path, replacing any existing
// content.
func WriteTableFile(path string, res *shortestpath.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := WriteTable(f, res); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
