package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(FolderTaskImages, "Proof.JPG")

	assert.True(t, strings.HasPrefix(key, "task_images/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	// Keys are random per upload.
	assert.NotEqual(t, key, ObjectKey(FolderTaskImages, "Proof.JPG"))
}

func TestObjectKey_NoExtension(t *testing.T) {
	key := ObjectKey(FolderProfilePictures, "avatar")

	assert.True(t, strings.HasPrefix(key, "profile_pictures/"))
	assert.False(t, strings.Contains(key, "."))
}

func TestObjectURL(t *testing.T) {
	withEndpoint := &S3Storage{bucket: "uploads", region: "us-east-1", endpoint: "http://localhost:9000"}
	assert.Equal(t,
		"http://localhost:9000/uploads/task_images/abc.jpg",
		withEndpoint.ObjectURL("task_images/abc.jpg"))

	aws := &S3Storage{bucket: "uploads", region: "eu-west-1"}
	assert.Equal(t,
		"https://uploads.s3.eu-west-1.amazonaws.com/task_images/abc.jpg",
		aws.ObjectURL("task_images/abc.jpg"))
}
