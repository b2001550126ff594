// Package ole2 provides access to streams within an OLE2/CFB compound
// file, the container format .doc files are stored in.
package ole2

import (
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Reader provides access to streams within an OLE2 compound file. It
// wraps mscfb's sector/FAT walking, exposing the flat name-lookup shape
// the rest of this module's readers expect.
type Reader struct {
	streams map[string][]byte
	names   []string
}

// NewReader initializes an OLE2 reader from an io.ReaderAt by reading
// every stream eagerly; .doc files are small enough that this trades a
// little up-front memory for a reader with no further I/O dependency.
func NewReader(r io.ReaderAt) (*Reader, error) {
	doc, err := mscfb.New(io.NewSectionReader(r, 0, 1<<62))
	if err != nil {
		return nil, fmt.Errorf("ole2: failed to open compound file: %w", err)
	}

	reader := &Reader{streams: make(map[string][]byte)}
	for entry, nextErr := doc.Next(); nextErr == nil; entry, nextErr = doc.Next() {
		name := strings.TrimSpace(entry.Name)
		data := make([]byte, entry.Size)
		if entry.Size > 0 {
			if _, readErr := entry.Read(data); readErr != nil && readErr != io.EOF {
				return nil, fmt.Errorf("ole2: failed to read stream %q: %w", name, readErr)
			}
		}
		reader.streams[name] = data
		reader.names = append(reader.names, name)
	}

	return reader, nil
}

// ListStreams returns the names of all streams in the OLE2 file.
func (r *Reader) ListStreams() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// ReadStream finds a stream by name and returns its content.
func (r *Reader) ReadStream(name string) ([]byte, error) {
	if data, ok := r.streams[strings.TrimSpace(name)]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("ole2: stream '%s' not found", name)
}
