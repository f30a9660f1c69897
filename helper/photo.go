package helper

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() (*cloudinary.Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Printf("Cloudinary init failed: %v", err)
		return nil, err
	}
	return cld, nil
}

// UploadAccommodationPhoto pushes one image file to cloudinary and returns
// its secure URL.
func UploadAccommodationPhoto(file *multipart.FileHeader, accommodationId uint) (string, error) {
	fileReader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer fileReader.Close()

	cld, err := InitCloudinary()
	if err != nil {
		return "", err
	}

	uploadResult, err := cld.Upload.Upload(context.Background(), fileReader, uploader.UploadParams{
		Folder:       "accommodations",
		PublicID:     fmt.Sprintf("accommodation_%d_%d", accommodationId, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
