package store

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"licmatch/internal/textutil"
)

// encodedFingerprint is the persisted form of one fingerprint.
type encodedFingerprint struct {
	blob []byte
	hash string
}

func encodeFingerprint(fp textutil.Fingerprint) (encodedFingerprint, error) {
	raw, err := json.Marshal(fp)
	if err != nil {
		return encodedFingerprint{}, fmt.Errorf("marshal fingerprint: %w", err)
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return encodedFingerprint{}, fmt.Errorf("create xz writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return encodedFingerprint{}, fmt.Errorf("compress fingerprint: %w", err)
	}
	if err := w.Close(); err != nil {
		return encodedFingerprint{}, fmt.Errorf("compress fingerprint: %w", err)
	}
	return encodedFingerprint{blob: buf.Bytes(), hash: contentHash(raw)}, nil
}

func decodeFingerprint(blob []byte, wantHash string) (textutil.Fingerprint, error) {
	r, err := xz.NewReader(bytes.NewReader(blob))
	if err != nil {
		return textutil.Fingerprint{}, fmt.Errorf("%w: create xz reader: %v", ErrCorrupt, err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return textutil.Fingerprint{}, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	if got := contentHash(raw); got != wantHash {
		return textutil.Fingerprint{}, fmt.Errorf("%w: hash %s, expected %s", ErrCorrupt, got, wantHash)
	}

	var fp textutil.Fingerprint
	if err := json.Unmarshal(raw, &fp); err != nil {
		return textutil.Fingerprint{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return fp, nil
}

func contentHash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
