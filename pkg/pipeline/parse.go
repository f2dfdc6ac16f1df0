package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/httputil"
	treeio "github.com/matzehuels/smartview/pkg/io"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/tree"
)

// maxSourceBytes bounds trees read from files or stdin.
const maxSourceBytes = 64 << 20

// Load reads the tree named by the options without caching: inline Newick
// text, stdin ("-"), an http(s) URL fetched with client, or a local file.
func Load(ctx context.Context, client *httputil.Client, opts Options) (*tree.Node, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	if opts.Newick != "" {
		return newick.Read(opts.Newick)
	}
	data, err := readSource(ctx, client, opts)
	if err != nil {
		return nil, err
	}
	return Decode(opts.Source, data)
}

func readSource(ctx context.Context, client *httputil.Client, opts Options) ([]byte, error) {
	switch {
	case opts.Source == "-":
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		return readAll(in, "stdin")
	case errors.IsURL(opts.Source):
		if client == nil {
			client = httputil.NewClient()
		}
		return client.Fetch(ctx, opts.Source)
	default:
		f, err := os.Open(opts.Source)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree file %s", opts.Source)
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", opts.Source, err)
		}
		defer f.Close()
		return readAll(f, opts.Source)
	}
}

func readAll(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > maxSourceBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", name, maxSourceBytes)
	}
	return data, nil
}

// Decode parses tree data read from name. Data is JSON when the name ends
// in ".json" or the data starts with "{", and Newick otherwise.
func Decode(name string, data []byte) (*tree.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if strings.EqualFold(filepath.Ext(name), ".json") || bytes.HasPrefix(trimmed, []byte("{")) {
		return treeio.ReadJSON(bytes.NewReader(trimmed))
	}
	return newick.Read(string(trimmed))
}
