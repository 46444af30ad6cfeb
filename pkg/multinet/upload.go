package multinet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"

	"github.com/multinet-app/multinet-go/pkg/multinet/client"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Payload is the data of a table upload: either inline text or a readable
// handle whose full contents are read before the request is sent.
type Payload interface {
	// text resolves the payload to the exact request body.
	text() (string, error)
}

// InlineText is upload data already held in memory. It is sent verbatim.
type InlineText string

func (t InlineText) text() (string, error) {
	return string(t), nil
}

// FileHandle is upload data read from r. Name only labels errors and logs.
// If r is an io.Closer it is closed once read.
type FileHandle struct {
	Name   string
	Reader io.Reader
}

func (f FileHandle) text() (string, error) {
	if f.Reader == nil {
		return "", &DecodeError{Source: f.Name, Err: errors.New("no reader")}
	}
	if c, ok := f.Reader.(io.Closer); ok {
		defer c.Close()
	}

	data, err := io.ReadAll(f.Reader)
	if err != nil {
		return "", &DecodeError{Source: f.Name, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &DecodeError{Source: f.Name, Err: errInvalidUTF8}
	}
	return string(data), nil
}

// FromFile opens path on fs as a FileHandle.
func FromFile(fs afero.Fs, path string) (FileHandle, error) {
	f, err := fs.Open(path)
	if err != nil {
		return FileHandle{}, &DecodeError{Source: path, Err: err}
	}
	return FileHandle{Name: path, Reader: f}, nil
}

// UploadOptions describes a table upload.
type UploadOptions struct {
	Type UploadType
	Data Payload
}

// Validate checks the upload type and that data is present.
func (o UploadOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.Required, validation.In(UploadTypeCSV, UploadTypeNestedJSON, UploadTypeNewick)),
		validation.Field(&o.Data, validation.NotNil),
	)
}

// UploadResult is the server's answer to a table upload. CSV and Newick
// uploads answer with the created rows. Nested JSON uploads answer with an
// object of counts, kept in Summary. Raw always holds the body as received.
type UploadResult struct {
	Rows    []*Row
	Summary *Row
	Raw     json.RawMessage
}

// UploadTable creates a table from CSV, nested JSON or Newick text and returns
// what the server reported. A FileHandle is read in full first; if that fails
// no request is made.
func (a *API) UploadTable(ctx context.Context, workspace, table string, opts UploadOptions) (*UploadResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, invalidOption(err)
	}

	text, err := opts.Data.text()
	if err != nil {
		return nil, err
	}

	a.logger.Debug("uploading table",
		"workspace", workspace,
		"table", table,
		"type", opts.Type,
		"bytes", len(text),
	)

	headers := http.Header{"Content-Type": []string{"text/plain"}}

	path := "/" + resourcePath(string(opts.Type), workspace, table)
	resp, err := a.client.Post(ctx, path, text, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to upload table: %w", err)
	}

	result, err := decodeUploadResult(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to upload table: %w", err)
	}
	return result, nil
}

func decodeUploadResult(resp *client.Response) (*UploadResult, error) {
	result := &UploadResult{Raw: json.RawMessage(resp.Body)}
	if !resp.IsJSON() {
		return result, nil
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return result, nil
	}

	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &result.Rows); err != nil {
			return nil, fmt.Errorf("failed to decode uploaded rows: %w", err)
		}
	case '{':
		result.Summary = NewRow()
		if err := json.Unmarshal(body, result.Summary); err != nil {
			return nil, fmt.Errorf("failed to decode upload summary: %w", err)
		}
	}
	return result, nil
}
