package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/bmic/internal/filex"
	"github.com/dmitrijs2005/bmic/internal/netx"
)

// MaxAvatarSize is the largest image upload-avatar accepts.
const MaxAvatarSize = 5 << 20

type presignRequest struct {
	ContentType string `json:"content_type"`
	Ext         string `json:"ext,omitempty"`
}

// PresignedAvatar is the server's answer to POST /avatars.
type PresignedAvatar struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	Key       string `json:"key"`
}

type AvatarUploader struct {
	baseURL string
	hc      *http.Client
}

func NewAvatarUploader(baseURL string, timeout time.Duration) *AvatarUploader {
	return &AvatarUploader{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// Upload sends the image at path to object storage and returns the URL the
// avatar is served from.
func (u *AvatarUploader) Upload(ctx context.Context, path string) (string, error) {
	if u.baseURL == "" {
		return "", fmt.Errorf("%w: no server address configured", ErrUnavailable)
	}

	body, err := filex.ReadLimited(path, MaxAvatarSize)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}

	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, contentType)
	}

	p, err := u.presign(ctx, contentType, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return "", err
	}

	if err := netx.UploadToPresignedURL(ctx, u.hc, p.UploadURL, contentType, body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return p.AvatarURL, nil
}

func (u *AvatarUploader) presign(ctx context.Context, contentType, ext string) (*PresignedAvatar, error) {
	reqBody, err := json.Marshal(presignRequest{ContentType: contentType, Ext: ext})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/avatars", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return nil, err
	}

	var p PresignedAvatar
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadSize)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode presign response: %v", ErrUnavailable, err)
	}
	if p.UploadURL == "" || p.AvatarURL == "" {
		return nil, fmt.Errorf("%w: incomplete presign response", ErrUnavailable)
	}
	return &p, nil
}
