package integrations

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mcbanners/banners/pkg/httputil"

	// Registers the WebP decoder so sniffed WebP icons can be rendered.
	_ "golang.org/x/image/webp"
)

const defaultMaxImage = 2 << 20

// FetchImage downloads url and returns the raw image bytes so banners embed
// their icons instead of referencing third-party URLs. data: URIs are decoded
// in place. Payloads that are not images or exceed the size limit fail with
// [ErrUnavailable].
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty image url", ErrNotFound)
	}
	if strings.HasPrefix(url, "data:") {
		return decodeDataURI(url)
	}

	var data []byte
	err := httputil.Do(ctx, c.retry, func() error {
		rc, err := c.send(ctx, http.MethodGet, url, nil, nil)
		if err != nil {
			return err
		}
		defer rc.Close()

		data, err = io.ReadAll(io.LimitReader(rc, c.maxImage+1))
		if err != nil {
			return fmt.Errorf("%w: read image: %v", ErrUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxImage {
		return nil, fmt.Errorf("%w: image larger than %d bytes", ErrUnavailable, c.maxImage)
	}
	if err := checkImage(data); err != nil {
		return nil, err
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data uri", ErrUnavailable)
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: data uri: %v", ErrUnavailable, err)
		}
		data = decoded
	} else {
		data = []byte(payload)
	}
	if err := checkImage(data); err != nil {
		return nil, err
	}
	return data, nil
}

func checkImage(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty image", ErrUnavailable)
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: unexpected content type %s", ErrUnavailable, ct)
	}
	return nil
}
