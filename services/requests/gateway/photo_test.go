package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeUploader) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	return f.result, f.err
}

func TestPhotoGW_Upload(t *testing.T) {
	up := &fakeUploader{result: &uploader.UploadResult{
		PublicID:  "roadassist/requests/abc/problem-1",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/roadassist/requests/abc/problem-1.jpg",
	}}

	url, err := NewPhotoGW(up, "roadassist").Upload(context.Background(), strings.NewReader("jpeg"), "requests/abc/problem-1")

	require.NoError(t, err)
	assert.Equal(t, up.result.SecureURL, url)
	assert.Equal(t, "requests/abc/problem-1", up.params.PublicID)
	assert.Equal(t, "roadassist", up.params.Folder)
}

func TestPhotoGW_UploadErrors(t *testing.T) {
	tests := []struct {
		name   string
		result *uploader.UploadResult
		err    error
	}{
		{"transport", nil, errors.New("timeout")},
		{"rejected", &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}, nil},
		{"no url", &uploader.UploadResult{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUploader{result: tt.result, err: tt.err}

			_, err := NewPhotoGW(up, "").Upload(context.Background(), strings.NewReader("x"), "p")

			assert.ErrorContains(t, err, "failed to upload photo")
		})
	}
}
