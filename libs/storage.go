package libs

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/utils"
)

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary init from URL failed")
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(fileHeader.Filename, " ", "_"))
	publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload to cloudinary")
	}
	if resp == nil {
		return "", errors.New("cloudinary response is nil")
	}

	log.WithField("public_id", resp.PublicID).Debug("image uploaded to cloudinary")

	if resp.SecureURL == "" {
		if resp.URL != "" {
			return resp.URL, nil
		}
		return "", errors.New("both SecureURL and URL are empty")
	}
	return resp.SecureURL, nil
}

// LocalUploader writes images to the upload directory that the router
// serves under /uploads.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (u *LocalUploader) Upload(_ context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	rel, err := utils.SaveFile(fileHeader, u.dir, folder)
	if err != nil {
		return "", errors.Wrap(err, "failed to save file")
	}
	return u.baseURL + "/uploads/" + rel, nil
}
